package model

import "testing"

func TestProgress(t *testing.T) {
	cases := []struct {
		name     string
		activity []string
		want     float64
		ok       bool
	}{
		{"step line", []string{"Step 2 of 7"}, 2.0 / 7.0, true},
		{"step after other text", []string{"Installing Word", "Step 5 of 5"}, 1.0, true},
		{"no step line", []string{"Preparing iPad A"}, 0, false},
		{"empty", nil, 0, false},
		{"zero total", []string{"Step 1 of 0"}, 0, false},
		{"step mid-sentence not matched", []string{"At Step 2 of 7"}, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := StatusReport{Activity: tc.activity}.Progress()
			if ok != tc.ok || got != tc.want {
				t.Errorf("Progress() = %v, %v; want %v, %v", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestElementChecked(t *testing.T) {
	if !(Element{Value: "1"}).Checked() {
		t.Error("value 1 should be checked")
	}
	if !(Element{Value: "true"}).Checked() {
		t.Error("value true should be checked")
	}
	if (Element{Value: "0"}).Checked() || (Element{Value: ""}).Checked() {
		t.Error("value 0 / empty should not be checked")
	}
}

func TestElementLabel(t *testing.T) {
	if (Element{Title: "Apply", Name: "other"}).Label() != "Apply" {
		t.Error("title should win over name")
	}
	if (Element{Name: "Apply"}).Label() != "Apply" {
		t.Error("name should be the fallback")
	}
}

func TestMapRole(t *testing.T) {
	cases := map[string]Role{
		"AXWindow":     RoleWindow,
		"AXSheet":      RoleSheet,
		"AXButton":     RoleButton,
		"AXCheckBox":   RoleCheckbox,
		"AXTable":      RoleTable,
		"AXRow":        RoleRow,
		"AXNeverHeard": RoleUnknown,
		"":             RoleUnknown,
		"AXStaticText": RoleText,
		"AXOutline":    RoleTable,
	}
	for ax, want := range cases {
		if got := MapRole(ax); got != want {
			t.Errorf("MapRole(%q) = %q, want %q", ax, got, want)
		}
	}
}

func TestTableSnapshotHasColumn(t *testing.T) {
	snap := TableSnapshot{Columns: []string{"Name", "UDID"}}
	if !snap.HasColumn("UDID") || snap.HasColumn("Serial") {
		t.Error("HasColumn mismatch")
	}
}

func TestPromptDescriptorHasButton(t *testing.T) {
	d := PromptDescriptor{Buttons: []string{"Cancel", "Apply"}}
	if !d.HasButton("Apply") || d.HasButton("Add") {
		t.Error("HasButton mismatch")
	}
}
