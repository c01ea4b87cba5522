package playable

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSimpleLogMessage(t *testing.T) {
	before := time.Now()
	lm := SimpleLogMessage("", "test %d", 5)
	assert.Equal(t, "test 5", lm.Message)
	assert.Nil(t, lm.SeatIDs)
	assert.False(t, lm.Time.Before(before))
	assert.False(t, lm.Time.After(time.Now()))
	assert.Nil(t, lm.Cards)
	assert.Len(t, lm.UUID, 36)
}

func TestSimpleLogMessage_withSeatID(t *testing.T) {
	lm := SimpleLogMessage("abc", "test %d", 4)
	assert.Equal(t, "test 4", lm.Message)
	assert.Equal(t, []string{"abc"}, lm.SeatIDs)
}

func TestSimpleLogMessageSlice(t *testing.T) {
	lms := SimpleLogMessageSlice("", "test %d", 38)
	assert.Equal(t, 1, len(lms))
	assert.Equal(t, "test 38", lms[0].Message)
}

func TestOK(t *testing.T) {
	a := assert.New(t)
	a.Equal(&Response{Key: "status", Value: "OK"}, OK())
	a.Equal(&Response{Key: "status", Value: "OK", Context: "ctx"}, OK("ctx"))
}

func TestAdditionalData(t *testing.T) {
	a := assert.New(t)

	var payload PayloadIn
	a.NoError(json.Unmarshal([]byte(`{"action":"action","subject":"raise","additionalData":{"amount":20,"name":"Alice"},"context":"c1"}`), &payload))
	a.Equal("action", payload.Action)
	a.Equal("raise", payload.Subject)
	a.Equal("c1", payload.Context)

	amount, ok := payload.AdditionalData.GetInt("amount")
	a.True(ok)
	a.Equal(20, amount)

	name, ok := payload.AdditionalData.GetString("name")
	a.True(ok)
	a.Equal("Alice", name)

	_, ok = payload.AdditionalData.GetInt("name")
	a.False(ok)

	_, ok = payload.AdditionalData.GetString("missing")
	a.False(ok)

	amount, ok = AdditionalData{"amount": 7}.GetInt("amount")
	a.True(ok)
	a.Equal(7, amount)

	// json numbers past the int range are not truncated into garbage
	_, ok = AdditionalData{"amount": 1e300}.GetInt("amount")
	a.False(ok)
	_, ok = AdditionalData{"amount": -1e19}.GetInt("amount")
	a.False(ok)
	_, ok = AdditionalData{"amount": math.NaN()}.GetInt("amount")
	a.False(ok)

	amount, ok = AdditionalData{"amount": float64(1 << 62)}.GetInt("amount")
	a.True(ok)
	a.Equal(1<<62, amount)
}
