package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnterprise_EditRoundTrip(t *testing.T) {
	original := EnterpriseSettings{
		EnterpriseCode:       "E1",
		EnterpriseName:       "Apteka Central",
		Email:                "admin@central.example",
		DataFormat:           "morion",
		SingleStore:          true,
		StockUploadFrequency: 30,
		DiscountRate:         2.5,
		LastStockUpload:      "2025-03-14T09:30:00",
	}

	// Simulate the panel flow: flatten, apply edits through With, rebuild.
	edited := original.ToValues().
		With("enterprise_name", "Apteka Central Plus").
		With("stock_correction", true)

	rebuilt := EnterpriseFromValues(edited)
	want := original
	want.EnterpriseName = "Apteka Central Plus"
	want.StockCorrection = true

	if diff := cmp.Diff(want, rebuilt); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEnterpriseFields_SelectGetsFormatOptions(t *testing.T) {
	formats := FormatOptions([]DataFormat{
		{ID: 1, FormatName: "morion"},
		{ID: 2, FormatName: "badm"},
	})
	fields := EnterpriseFields(formats)

	var dataFormat *Field
	for i := range fields {
		if fields[i].Name == "data_format" {
			dataFormat = &fields[i]
			break
		}
	}
	require.NotNil(t, dataFormat)
	assert.Equal(t, KindSelect, dataFormat.Kind)
	require.Len(t, dataFormat.Options, 2)
	assert.Equal(t, "morion", dataFormat.Options[0].Value)
}

func TestDeveloperFields_LoginIsReadOnly(t *testing.T) {
	for _, f := range DeveloperFields() {
		if f.Name == "developer_login" {
			assert.True(t, f.Disabled, "login identifies the record and must not be editable")
			return
		}
	}
	t.Fatal("developer_login field missing")
}

func TestMappingBranch_TelegramIDsEditedAsCSV(t *testing.T) {
	m := MappingBranch{
		EnterpriseCode: "E1",
		Branch:         "B7",
		StoreID:        "S7",
		IDTelegram:     []string{"111", "222"},
	}

	v := m.ToValues()
	assert.Equal(t, "111,222", v.String("id_telegram"))

	// Sloppy spacing and a trailing comma survive the rebuild.
	rebuilt := MappingBranchFromValues(v.With("id_telegram", " 111, 333 ,"))
	assert.Equal(t, []string{"111", "333"}, rebuilt.IDTelegram)

	empty := MappingBranchFromValues(v.With("id_telegram", ""))
	assert.Nil(t, empty.IDTelegram)
}

func TestRecordKeys(t *testing.T) {
	assert.Equal(t, "E1", EnterpriseSettings{EnterpriseCode: "E1"}.Key())
	assert.Equal(t, "dev", DeveloperSettings{DeveloperLogin: "dev"}.Key())
	assert.Equal(t, "morion", DataFormat{FormatName: "morion"}.Key())
	assert.Equal(t, "B7", MappingBranch{Branch: "B7"}.Key())
	assert.Equal(t, "D1", DropshipEnterprise{Code: "D1"}.Key())
}
