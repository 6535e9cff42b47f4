package config

import (
	"testing"
	"time"

	"github.com/namsral/flag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c, err := Load("test", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, 5, c.WordLength)
	assert.Equal(t, int64(100000), c.SearchProgressEvery)
	assert.Equal(t, 10*time.Minute, c.SearchTimeout)
	assert.Equal(t, 14*24*time.Hour, c.TokenTTL())
	assert.Equal(t, 5, c.Words().Length)
}

func TestEnvAndFlags(t *testing.T) {
	t.Setenv("SEARCH_WORKERS", "8")
	t.Setenv("SEARCH_NAIVE_KICKER", "true")
	t.Setenv("PORT", "9000")

	c, err := Load("test", []string{"-port", "9100", "-words-answers-file", "a.txt"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, c.SearchWorkers)
	assert.True(t, c.SearchNaiveKicker)
	assert.Equal(t, "9100", c.Port, "flag beats env")
	assert.Equal(t, "a.txt", c.Words().AnswersPath)
}

func TestExtraFlags(t *testing.T) {
	var top int
	_, err := Load("test", []string{"-top", "3"}, func(fs *flag.FlagSet) {
		fs.IntVar(&top, "top", 0, "")
	})
	require.NoError(t, err)
	assert.Equal(t, 3, top)
}

func TestValidate(t *testing.T) {
	for _, args := range [][]string{
		{"-word-length", "0"},
		{"-word-length", "27"},
		{"-search-max-excluded", "-1"},
		{"-search-timeout", "0s"},
		{"-jwt-expires-days", "0"},
	} {
		_, err := Load("test", args, nil)
		assert.ErrorIs(t, err, ErrInvalid, "%v", args)
	}
}
