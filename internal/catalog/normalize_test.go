package catalog

import "testing"

func TestFromRow(t *testing.T) {
	row := map[string]string{
		"number":      " 12 ",
		"type":        "Осевой",
		"model":       "ВО 06-300",
		"size":        "№2,5",
		"diameter":    "250",
		"efficiency":  "900 - 3600",
		"pressure":    "30-170",
		"power":       "0,18",
		"noise_level": "64",
		"price":       "18 500",
	}

	p, ok := FromRow(row, 3)
	if !ok {
		t.Fatal("expected product row, got skip")
	}

	if p.ID != "12" || p.Number != "12" {
		t.Errorf("id/number = %q/%q, want 12", p.ID, p.Number)
	}
	if p.Type != "Осевой" || p.Model != "ВО 06-300" || p.Size != "№2,5" {
		t.Errorf("text fields = %q %q %q", p.Type, p.Model, p.Size)
	}
	if !scalarEq(p.Diameter, fl(250)) {
		t.Errorf("diameter = %v", deref(p.Diameter))
	}
	if !scalarEq(p.Airflow.Min, fl(900)) || !scalarEq(p.Airflow.Max, fl(3600)) || p.Airflow.Raw != "900 - 3600" {
		t.Errorf("airflow = %+v", p.Airflow)
	}
	if !scalarEq(p.Pressure.Min, fl(30)) || !scalarEq(p.Pressure.Max, fl(170)) {
		t.Errorf("pressure = %+v", p.Pressure)
	}
	if !scalarEq(p.Power, fl(0.18)) || !scalarEq(p.NoiseLevel, fl(64)) || !scalarEq(p.Price, fl(18500)) {
		t.Errorf("scalars = %v %v %v", deref(p.Power), deref(p.NoiseLevel), deref(p.Price))
	}
	if p.Raw.Price != "18 500" || p.Raw.Efficiency != "900 - 3600" {
		t.Errorf("raw snapshots = %+v", p.Raw)
	}
	if p.Meta.ModelSlug != "во-06-300" {
		t.Errorf("model slug = %q", p.Meta.ModelSlug)
	}
}

func TestFromRow_MinimalProductNotSkipped(t *testing.T) {
	p, ok := FromRow(map[string]string{
		"type":  "Axial",
		"model": "M-100",
		"size":  "200mm",
	}, 1)
	if !ok {
		t.Fatal("row with type, model and size must not be skipped")
	}
	if p.Type != "Axial" || p.Model != "M-100" || p.Size != "200mm" {
		t.Errorf("fields = %q %q %q", p.Type, p.Model, p.Size)
	}
	if p.Diameter != nil || p.Power != nil || p.NoiseLevel != nil || p.Price != nil {
		t.Error("blank numeric fields must be absent")
	}
	if p.Airflow.Min != nil || p.Airflow.Max != nil || p.Airflow.Raw != "" {
		t.Errorf("blank airflow must be fully absent, got %+v", p.Airflow)
	}
}

func TestFromRow_SkipsNonProductRows(t *testing.T) {
	tests := []struct {
		name string
		row  map[string]string
	}{
		{name: "empty row", row: map[string]string{}},
		{name: "all whitespace", row: map[string]string{"type": " ", "model": " ", "size": "\t"}},
		{name: "only numeric remnants", row: map[string]string{"number": "5", "price": "100"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := FromRow(tt.row, 1); ok {
				t.Error("expected skip")
			}
		})
	}
}

func TestFromRow_DefaultIDFromPosition(t *testing.T) {
	p, ok := FromRow(map[string]string{"model": "X"}, 41)
	if !ok {
		t.Fatal("unexpected skip")
	}
	if p.ID != "41" || p.Number != "41" {
		t.Errorf("default id = %q/%q, want 41", p.ID, p.Number)
	}

	p, _ = FromRow(map[string]string{"model": "X", "number": "А-7"}, 41)
	if p.ID != "А-7" {
		t.Errorf("explicit number must win, got %q", p.ID)
	}
}
