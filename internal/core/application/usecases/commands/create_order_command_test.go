package commands_test

import (
	"testing"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/application/usecases/commands"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateOrderParams() commands.CreateOrderParams {
	return commands.CreateOrderParams{
		Pickup:     order.Contact{Phone: "604-555-0101", Address: "800 Robson St"},
		Dropoff:    order.Contact{Phone: "604-555-0102", Address: "1055 W Georgia St"},
		DistanceKm: 4.2,
		BaseFare:   1000,
	}
}

func TestNewCreateOrderCommand(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(validCreateOrderParams())
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, int64(1000), cmd.BaseFare())
	assert.Equal(t, order.DefaultCurrency, cmd.Currency())
}

func TestNewCreateOrderCommand_MissingPickupAddress(t *testing.T) {
	params := validCreateOrderParams()
	params.Pickup.Address = ""

	_, err := commands.NewCreateOrderCommand(params)
	require.Error(t, err)
}

func TestNewCreateOrderCommand_MissingDropoffPhone(t *testing.T) {
	params := validCreateOrderParams()
	params.Dropoff.Phone = ""

	_, err := commands.NewCreateOrderCommand(params)
	require.Error(t, err)
}

func TestNewCreateOrderCommand_ZeroBaseFare(t *testing.T) {
	params := validCreateOrderParams()
	params.BaseFare = 0

	_, err := commands.NewCreateOrderCommand(params)
	require.ErrorIs(t, err, commands.ErrBaseFareIsInvalid)
}

func TestNewCreateOrderCommand_NegativeDistance(t *testing.T) {
	params := validCreateOrderParams()
	params.DistanceKm = -1

	_, err := commands.NewCreateOrderCommand(params)
	require.Error(t, err)
}

func TestCreateOrderCommand_NotConstructed(t *testing.T) {
	var cmd commands.CreateOrderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
