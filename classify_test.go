package stmtledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	c := DefaultClassifier()

	tests := []struct {
		text string
		want LineClass
	}{
		{"03/14 AMAZON.COM -42.10 1,523.67", LineStart},
		{"12/31 YEAR END TRANSFER 10.00 10.00", LineStart},
		{"MKTPLACE PMTS", LineContinuation},
		{"Beginning Balance $500.00", LineNoise},
		{"Ending Balance $500.00", LineNoise},
		{"TRANSACTION DETAIL", LineNoise},
		{"Page 2 of 4", LineNoise},
		{"Your account ending in 1234", LineNoise},
		{"", LineNoise},
		{"03/14", LineContinuation}, // date with no trailing field is not a start
		{"3/14 MISSING LEADING ZERO", LineContinuation},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, c.Classify(tc.text), "%q", tc.text)
	}
}

func TestSplitStart(t *testing.T) {
	c := DefaultClassifier()

	date, remainder, ok := c.SplitStart("03/14 AMAZON.COM -42.10 1,523.67")
	require.True(t, ok)
	assert.Equal(t, "03/14", date)
	assert.Equal(t, "AMAZON.COM -42.10 1,523.67", remainder)

	_, _, ok = c.SplitStart("MKTPLACE PMTS")
	assert.False(t, ok)
}

func TestNewClassifierBadPattern(t *testing.T) {
	_, err := NewClassifier(`(\d{2}`, nil)
	assert.Error(t, err)
}

func TestClassifyCustomVocabulary(t *testing.T) {
	c, err := NewClassifier(DefaultDatePattern, []string{"STATEMENT PERIOD"})
	require.NoError(t, err)

	assert.Equal(t, LineNoise, c.Classify("STATEMENT PERIOD 03/01 - 03/31"))
	// default vocabulary no longer applies
	assert.Equal(t, LineContinuation, c.Classify("Beginning Balance $500.00"))
}
