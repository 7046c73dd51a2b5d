package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/intake/internal/cli"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validMandate = `
fullName: Ada Obi
title: Head of Procurement
company: Niger Delta Refining Ltd
country: Nigeria
email: ada.obi@ndr.ng
phone: "+2348012345678"
registrationNumber: RC-104233
products:
  - Bonny Light Crude
  - EN590 Diesel
volume: 2500000
deliveryTerms: fob
destinationPort: Rotterdam
contractDuration: 12m
financialInstrument: sblc
endUse: refinery
source: referral
`

func TestValidateFile_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mandate.yml")
	require.NoError(t, os.WriteFile(path, []byte(validMandate+"crmId: 42\n"), 0644))

	f, err := cli.ValidateFile(domain.KindMandate, path)
	require.NoError(t, err)
	assert.True(t, f.Valid())
	assert.Equal(t, 2500000, f.Form.Volume)
	assert.Equal(t, []string{"crmId"}, f.Ignored)

	var buf bytes.Buffer
	cli.PrintReport(&buf, f)
	assert.Contains(t, buf.String(), `warning: ignoring unknown field "crmId"`)
	assert.Contains(t, buf.String(), "✓ mandate form is valid")
}

func TestValidateDocument_Invalid(t *testing.T) {
	doc := strings.NewReplacer("volume: 2500000", "volume: 499999", "email: ada.obi@ndr.ng", "email: nope").
		Replace(validMandate)
	f, err := cli.ValidateDocument(domain.KindMandate, []byte(doc))
	require.NoError(t, err)
	assert.False(t, f.Valid())

	var buf bytes.Buffer
	cli.PrintReport(&buf, f)
	out := buf.String()
	assert.Contains(t, out, "✗ mandate form has 2 invalid field(s):")
	assert.Contains(t, out, "  - email: Please enter a valid email")
	assert.Contains(t, out, "  - volume: Minimum volume is 500,000 BBL")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("email")), bytes.Index(buf.Bytes(), []byte("volume:")))
}

func TestValidateDocument_JSONAndDefaults(t *testing.T) {
	f, err := cli.ValidateDocument(domain.KindSpeak, []byte(`{"fullName": "Jonas Berg"}`))
	require.NoError(t, err)
	assert.Equal(t, "phone", f.Form.ContactMethod)
	assert.False(t, f.Valid())
}

func TestValidateDocument_Errors(t *testing.T) {
	_, err := cli.ValidateDocument("quote", []byte("{}"))
	assert.ErrorIs(t, err, domain.ErrUnknownKind)

	_, err = cli.ValidateDocument(domain.KindMandate, []byte("volume: [1, 2]\n"))
	assert.ErrorIs(t, err, domain.ErrFieldType)

	_, err = cli.ValidateDocument(domain.KindMandate, []byte("key: [unclosed"))
	assert.Error(t, err)

	_, err = cli.ValidateFile(domain.KindMandate, filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
