package store

import "testing"

func TestNewWhereBuilder(t *testing.T) {
	wb := NewWhereBuilder()

	if wb.NextArgIndex() != 1 {
		t.Errorf("expected first placeholder index 1, got %d", wb.NextArgIndex())
	}

	whereClause, args := wb.Build()
	if whereClause != "" {
		t.Errorf("expected empty clause for no conditions, got %q", whereClause)
	}
	if args != nil {
		t.Errorf("expected nil args for no conditions, got %v", args)
	}
}

func TestWhereBuilder_Add(t *testing.T) {
	wb := NewWhereBuilder()
	wb.Add("type", "Осевой")

	whereClause, args := wb.Build()
	if whereClause != " WHERE type = $1" {
		t.Errorf("clause = %q", whereClause)
	}
	if len(args) != 1 || args[0] != "Осевой" {
		t.Errorf("args = %v", args)
	}
}

func TestWhereBuilder_MultipleConditionsANDed(t *testing.T) {
	wb := NewWhereBuilder()
	wb.Add("type", "Осевой")
	wb.AddClause("price IS NOT NULL AND price >= $%d", 100.0)
	wb.AddClause("(airflow_max IS NULL OR airflow_max >= $%d)", 900.0)

	whereClause, args := wb.Build()
	want := " WHERE type = $1 AND price IS NOT NULL AND price >= $2 AND (airflow_max IS NULL OR airflow_max >= $3)"
	if whereClause != want {
		t.Errorf("clause = %q\n   want %q", whereClause, want)
	}
	if len(args) != 3 || args[1] != 100.0 || args[2] != 900.0 {
		t.Errorf("args = %v", args)
	}
}

func TestWhereBuilder_AddClauseMultipleValues(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddClause("price BETWEEN $%d AND $%d", 10.0, 20.0)

	whereClause, args := wb.Build()
	if whereClause != " WHERE price BETWEEN $1 AND $2" {
		t.Errorf("clause = %q", whereClause)
	}
	if len(args) != 2 {
		t.Errorf("args = %v", args)
	}
	if wb.NextArgIndex() != 3 {
		t.Errorf("NextArgIndex = %d, want 3", wb.NextArgIndex())
	}
}
