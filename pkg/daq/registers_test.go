package daq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveName(t *testing.T) {
	tests := []struct {
		name     string
		wantAddr uint16
		wantType regType
	}{
		{"AIN0", 0, typeFLOAT32},
		{"AIN3", 6, typeFLOAT32},
		{"AIN0_EF_READ_A", 7000, typeFLOAT32},
		{"AIN2_EF_READ_A", 7004, typeFLOAT32},
		{"AIN2_EF_READ_B", 7304, typeFLOAT32},
		{"AIN2_EF_READ_C", 7604, typeFLOAT32},
		{"AIN0_EF_INDEX", 9000, typeUINT32},
		{"AIN10_EF_INDEX", 9020, typeUINT32},
		{"AIN0_EF_CONFIG_A", 9300, typeUINT32},
		{"AIN0_EF_CONFIG_B", 9600, typeUINT32},
		{"AIN0_EF_CONFIG_D", 10200, typeFLOAT32},
		{"AIN0_EF_CONFIG_E", 10500, typeFLOAT32},
		{"AIN0_NEGATIVE_CH", 41000, typeUINT16},
		{"AIN3_NEGATIVE_CH", 41003, typeUINT16},
		{"AIN0_RESOLUTION_INDEX", 41500, typeUINT16},
		{"AIN2_RESOLUTION_INDEX", 41502, typeUINT16},
		{"TEMPERATURE0", 600, typeFLOAT32},
		{"TEMPERATURE3", 606, typeFLOAT32},
		{"TEMPERATURE_DEVICE_K", 60052, typeFLOAT32},
		{"PRODUCT_ID", 60000, typeFLOAT32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := resolveName(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAddr, reg.address)
			assert.Equal(t, tt.wantType, reg.dataType)
		})
	}
}

func TestResolveName_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		invalidCh bool
	}{
		{name: "BOGUS"},
		{name: "AIN0_EF_READ_X"},
		{name: "AINX_EF_READ_A", invalidCh: true},
		{name: "AIN150_EF_INDEX", invalidCh: true},
		{name: "AIN255", invalidCh: true},
		{name: "TEMPERATURE9", invalidCh: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveName(tt.name)
			require.Error(t, err)
			if tt.invalidCh {
				assert.ErrorIs(t, err, ErrInvalidChannel)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name      string
		dataType  regType
		value     float64
		wantBytes []byte
	}{
		{"uint16", typeUINT16, 199, []byte{0x00, 0xC7}},
		{"uint32", typeUINT32, 60052, []byte{0x00, 0x00, 0xEA, 0x94}},
		{"float32 one", typeFLOAT32, 1.0, []byte{0x3F, 0x80, 0x00, 0x00}},
		{"float32 zero", typeFLOAT32, 0.0, []byte{0x00, 0x00, 0x00, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := encodeValue(tt.dataType, tt.value)
			assert.Equal(t, tt.wantBytes, buf)

			got, err := decodeValue(tt.dataType, buf)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestDecodeValue_Short(t *testing.T) {
	_, err := decodeValue(typeFLOAT32, []byte{0x3F, 0x80})
	assert.Error(t, err)

	_, err = decodeValue(typeUINT16, nil)
	assert.Error(t, err)
}

func TestRegTypeQuantity(t *testing.T) {
	assert.Equal(t, uint16(1), typeUINT16.quantity())
	assert.Equal(t, uint16(2), typeUINT32.quantity())
	assert.Equal(t, uint16(2), typeFLOAT32.quantity())
}

func TestChannelName(t *testing.T) {
	assert.Equal(t, "AIN0", ChannelName(0))
	assert.Equal(t, "AIN13", ChannelName(13))
}
