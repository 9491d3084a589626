package domain_test

import (
	"encoding/json"
	"testing"

	"solar-quote-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteFormDecoding(t *testing.T) {
	var form domain.QuoteForm
	err := json.Unmarshal([]byte(`{
		"fullName": 12,
		"email": "a@b.co",
		"interests": ["Battery Storage", 3, {"x":1}, "EV Charging"],
		"unknown": "ignored"
	}`), &form)
	require.NoError(t, err)

	assert.Equal(t, domain.FormField(""), form.FullName)
	assert.Equal(t, domain.FormField("a@b.co"), form.Email)
	assert.Equal(t, []string{"Battery Storage", "EV Charging"}, form.Interests.Values)
	assert.False(t, form.Interests.Malformed)
}

func TestQuoteFormDecoding_ExactKeys(t *testing.T) {
	var form domain.QuoteForm
	err := json.Unmarshal([]byte(`{"FULLNAME":"Mallory","EMAIL":"a@b","Interests":["EV Charging"],"suburb":"Kew"}`), &form)
	require.NoError(t, err)

	assert.Equal(t, domain.FormField(""), form.FullName)
	assert.Equal(t, domain.FormField(""), form.Email)
	assert.Empty(t, form.Interests.Values)
	assert.Equal(t, domain.FormField("Kew"), form.Suburb)
}

func TestQuoteFormDecoding_NotAnObject(t *testing.T) {
	var form domain.QuoteForm
	assert.Error(t, json.Unmarshal([]byte(`["fullName"]`), &form))
}

func TestInterestListShapes(t *testing.T) {
	tests := []struct {
		raw       string
		malformed bool
		values    []string
	}{
		{raw: `null`},
		{raw: `"Battery Storage"`, malformed: true},
		{raw: `{"0":"Battery Storage"}`, malformed: true},
		{raw: `[]`, values: []string{}},
	}

	for _, tt := range tests {
		var form domain.QuoteForm
		require.NoError(t, json.Unmarshal([]byte(`{"interests":`+tt.raw+`}`), &form), tt.raw)
		assert.Equal(t, tt.malformed, form.Interests.Malformed, tt.raw)
		assert.Equal(t, tt.values, form.Interests.Values, tt.raw)
	}
}

func TestNormalize(t *testing.T) {
	form := domain.QuoteForm{
		FullName:               "  Jane Smith ",
		Email:                  "  Jane.Smith@Example.COM ",
		Phone:                  " 0412 345 678 ",
		Address:                "\t1 Main Rd\n",
		Suburb:                 " Spotswood ",
		Interests:              domain.InterestList{Values: []string{"Split System"}},
		DailyEnergyConsumption: " 20kWh ",
	}

	req := form.Normalize()
	assert.Equal(t, domain.QuoteRequest{
		FullName:               "Jane Smith",
		Email:                  "jane.smith@example.com",
		Phone:                  "0412 345 678",
		Address:                "1 Main Rd",
		Suburb:                 "Spotswood",
		Interests:              []string{"Split System"},
		DailyEnergyConsumption: "20kWh",
	}, req)

	// normalizing an already normalized request changes nothing
	again := domain.QuoteForm{
		FullName:               domain.FormField(req.FullName),
		Email:                  domain.FormField(req.Email),
		Phone:                  domain.FormField(req.Phone),
		Address:                domain.FormField(req.Address),
		Suburb:                 domain.FormField(req.Suburb),
		Interests:              domain.InterestList{Values: req.Interests},
		DailyEnergyConsumption: domain.FormField(req.DailyEnergyConsumption),
	}
	assert.Equal(t, req, again.Normalize())
}

func TestIsAllowedInterest(t *testing.T) {
	for _, tag := range domain.AllowedInterests {
		assert.True(t, domain.IsAllowedInterest(tag))
	}
	assert.False(t, domain.IsAllowedInterest("residential solar"))
	assert.False(t, domain.IsAllowedInterest(" Battery Storage"))
}
