package accounts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verifikat-dev/verifikat/internal/model"
)

func TestRoundTrip(t *testing.T) {
	accounts := []model.Account{
		{Code: "1930", Name: "Företagskonto", Description: "Business bank account"},
		{Code: "2610", Name: "Utgående moms 25 %", VatBox: "10"},
	}

	var buf bytes.Buffer
	err := WriteAccounts(&buf, accounts)
	require.NoError(t, err)

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, accounts[0], got[0])
	assert.Equal(t, accounts[1], got[1])
}

func TestReadAccounts_InvalidCode(t *testing.T) {
	in := "account_code,account_name,vat_box,description\n19X0,Broken,,\n"
	_, err := ReadAccounts(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestReadAccounts_WrongFieldCount(t *testing.T) {
	in := "account_code,account_name\n1930,Bank\n"
	_, err := ReadAccounts(strings.NewReader(in))
	assert.Error(t, err)
}

func TestReadAccounts_Empty(t *testing.T) {
	got, err := ReadAccounts(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDefaultChart(t *testing.T) {
	chart := DefaultChart(FormAktiebolag)
	require.NotEmpty(t, chart)

	codes := make(map[string]bool)
	for _, acct := range chart {
		assert.False(t, codes[acct.Code], "duplicate account %s", acct.Code)
		codes[acct.Code] = true
		assert.NotEmpty(t, acct.Name, "account %s missing name", acct.Code)
		assert.NotEqual(t, model.ClassUnknown, acct.Class(), "account %s has no class", acct.Code)
	}

	// The substitution targets must be in every chart.
	for _, code := range []string{Clearing, Receivable, Payable, EmployeeLiability} {
		assert.True(t, codes[code], "expected %s in default chart", code)
	}
	assert.True(t, codes["2081"], "aktiebolag chart carries aktiekapital")
}

func TestDefaultChart_EnskildFirma(t *testing.T) {
	chart := DefaultChart(FormEnskildFirma)
	svc := NewService(chart)
	assert.True(t, svc.Exists("2010"))
	assert.False(t, svc.Exists("2081"))
}

func TestDefaultChart_UnknownForm(t *testing.T) {
	// Unknown company forms fall back to aktiebolag.
	assert.Equal(t, DefaultChart(FormAktiebolag), DefaultChart("handelsbolag"))
}

func TestDefaultChartRoundTrip(t *testing.T) {
	chart := DefaultChart(FormAktiebolag)

	var buf bytes.Buffer
	err := WriteAccounts(&buf, chart)
	require.NoError(t, err)

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(chart))

	for i := range chart {
		assert.Equal(t, chart[i], got[i])
	}
}
