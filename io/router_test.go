package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_Nic(t *testing.T) {
	assert := assert.New(t)

	router := NewRouter()
	nic := router.Nic(3)

	// First input is the node address.
	value, err := nic.Input()
	assert.NoError(err)
	assert.Equal(int64(3), value)
	assert.Equal(0, nic.Idle)

	value, err = nic.Input()
	assert.NoError(err)
	assert.Equal(NO_PACKET, value)
	assert.Equal(1, nic.Idle)

	value, err = nic.Input()
	assert.NoError(err)
	assert.Equal(NO_PACKET, value)
	assert.Equal(2, nic.Idle)

	router.Send(Packet{Dest: 3, X: 10, Y: 20})
	value, _ = nic.Input()
	assert.Equal(int64(10), value)
	assert.Equal(0, nic.Idle)
	value, _ = nic.Input()
	assert.Equal(int64(20), value)
	assert.Equal(3, nic.Received)
}

func TestRouter_NicClosed(t *testing.T) {
	assert := assert.New(t)

	router := NewRouter()
	nic := router.Nic(3)

	router.Queue(3).Drain()
	router.Queue(3).Close()

	_, err := nic.Input()
	assert.ErrorIs(err, ErrQueueClosed)
	assert.Equal(0, nic.Idle)
}

func TestRouter_Output(t *testing.T) {
	assert := assert.New(t)

	router := NewRouter()
	nic := router.Nic(0)

	nic.Output(255)
	nic.Output(1)
	assert.True(nic.Sending())
	nic.Output(2)
	assert.False(nic.Sending())

	nic.Output(255)
	nic.Output(3)
	nic.Output(4)

	assert.Equal(2, router.Sent)
	assert.Equal([]int64{0, 255}, router.Addresses())
	assert.Equal([]Packet{{255, 1, 2}, {255, 3, 4}}, router.Receive(255))
	assert.Empty(router.Receive(255))
}
