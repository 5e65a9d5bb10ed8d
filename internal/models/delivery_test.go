package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryIsTerminal(t *testing.T) {
	assert.False(t, (&Delivery{Status: DeliveryPending}).IsTerminal())
	assert.True(t, (&Delivery{Status: DeliveryDelivered}).IsTerminal())
	assert.True(t, (&Delivery{Status: DeliveryMissed}).IsTerminal())
	assert.True(t, (&Delivery{Status: DeliveryCancelled}).IsTerminal())
}

func TestValidDeliveryStatus(t *testing.T) {
	assert.True(t, ValidDeliveryStatus(DeliveryPending))
	assert.True(t, ValidDeliveryStatus(DeliveryDelivered))
	assert.True(t, ValidDeliveryStatus(DeliveryMissed))
	assert.False(t, ValidDeliveryStatus("shipped"))
	assert.False(t, ValidDeliveryStatus(""))
}
