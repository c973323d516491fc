package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySecurity(t *testing.T) {
	tests := []struct {
		input string
		want  SecurityClass
	}{
		{"WPA3-SAE", SecurityWPA3},
		{"wpa2-psk-ccmp", SecurityWPA2},
		{"RSN-PSK", SecurityWPA2},
		{"WPA-TKIP", SecurityWPA},
		{"WEP", SecurityWEP},
		{"OPEN", SecurityOpen},
		{"ESS", SecurityOpen},
		{"[SAE][MFP]", SecurityWPA3},
		{"", SecurityUnknown},
		{"   ", SecurityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySecurity(tt.input))
		})
	}
}

func TestSecurityClass_OpenSecured(t *testing.T) {
	assert.True(t, SecurityOpen.IsOpen())
	assert.False(t, SecurityOpen.IsSecured())

	for _, c := range []SecurityClass{SecurityWEP, SecurityWPA, SecurityWPA2, SecurityWPA3} {
		assert.False(t, c.IsOpen(), string(c))
		assert.True(t, c.IsSecured(), string(c))
	}

	// Unknown is neither: an unrecorded descriptor must not trigger
	// open-network or downgrade heuristics.
	assert.False(t, SecurityUnknown.IsOpen())
	assert.False(t, SecurityUnknown.IsSecured())
}

func TestBandForFrequency(t *testing.T) {
	assert.Equal(t, Band24GHz, BandForFrequency(2412))
	assert.Equal(t, Band24GHz, BandForFrequency(2484))
	assert.Equal(t, Band5GHz, BandForFrequency(5180))
	assert.Equal(t, Band6GHz, BandForFrequency(5955))
	assert.Equal(t, Band6GHz, BandForFrequency(7115))
	assert.Equal(t, BandUnknown, BandForFrequency(0))
	assert.Equal(t, BandUnknown, BandForFrequency(900))
}

func TestFrequencyToChannel(t *testing.T) {
	assert.Equal(t, 1, FrequencyToChannel(2412))
	assert.Equal(t, 14, FrequencyToChannel(2484))
	assert.Equal(t, 36, FrequencyToChannel(5180))
	assert.Equal(t, 1, FrequencyToChannel(5955))
	assert.Equal(t, 0, FrequencyToChannel(0))
}

func TestSeverityOrder(t *testing.T) {
	assert.True(t, SeverityLow < SeverityMedium)
	assert.True(t, SeverityMedium < SeverityHigh)
	assert.True(t, SeverityHigh < SeverityCritical)
}

func TestSeverityJSON(t *testing.T) {
	data, err := SeverityCritical.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"critical"`, string(data))

	var s Severity
	assert.NoError(t, s.UnmarshalJSON([]byte(`"high"`)))
	assert.Equal(t, SeverityHigh, s)
}
