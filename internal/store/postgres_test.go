package store

import (
	"strings"
	"testing"

	"github.com/ventmash/fancatalog/internal/catalog"
)

func fl(v float64) *float64 { return &v }

func TestBuildListQuery_NoFilters(t *testing.T) {
	query, args := buildListQuery(catalog.Filter{}, catalog.SortPriceAsc)

	if strings.Contains(query, "WHERE") {
		t.Errorf("unfiltered query must have no WHERE clause: %q", query)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
	if !strings.Contains(query, `ORDER BY price ASC NULLS LAST, model COLLATE "C" ASC`) {
		t.Errorf("missing default order: %q", query)
	}
}

func TestBuildListQuery_SortDescending(t *testing.T) {
	query, _ := buildListQuery(catalog.Filter{}, catalog.SortPriceDesc)
	if !strings.Contains(query, "ORDER BY price DESC NULLS LAST") {
		t.Errorf("missing descending order: %q", query)
	}
}

func TestBuildListQuery_ScalarBoundsExcludeAbsent(t *testing.T) {
	query, args := buildListQuery(catalog.Filter{
		MinPrice: fl(100),
		MaxNoise: fl(70),
	}, catalog.SortPriceAsc)

	if !strings.Contains(query, "price IS NOT NULL AND price >= $1") {
		t.Errorf("min price condition missing: %q", query)
	}
	if !strings.Contains(query, "noise_level IS NOT NULL AND noise_level <= $2") {
		t.Errorf("max noise condition missing: %q", query)
	}
	if len(args) != 2 || args[0] != 100.0 || args[1] != 70.0 {
		t.Errorf("args = %v", args)
	}
}

func TestBuildListQuery_OverlapTreatsNullAsOpen(t *testing.T) {
	query, args := buildListQuery(catalog.Filter{
		MinAirflow:  fl(900),
		MaxAirflow:  fl(3600),
		MinPressure: fl(30),
	}, catalog.SortPriceAsc)

	for _, cond := range []string{
		"(airflow_max IS NULL OR airflow_max >= $1)",
		"(airflow_min IS NULL OR airflow_min <= $2)",
		"(pressure_max IS NULL OR pressure_max >= $3)",
	} {
		if !strings.Contains(query, cond) {
			t.Errorf("missing condition %q in %q", cond, query)
		}
	}
	if len(args) != 3 {
		t.Errorf("args = %v", args)
	}
}

func TestBuildListQuery_SubstringSearch(t *testing.T) {
	query, args := buildListQuery(catalog.Filter{Query: "  ВО-06 "}, catalog.SortPriceAsc)

	if !strings.Contains(query, "LOWER(model || ' ' || size || ' ' || type) LIKE $1") {
		t.Errorf("substring condition missing: %q", query)
	}
	if len(args) != 1 || args[0] != "%во-06%" {
		t.Errorf("args = %v, want lowercased pattern", args)
	}
}

func TestBuildListQuery_LikeMetacharactersEscaped(t *testing.T) {
	_, args := buildListQuery(catalog.Filter{Query: "50%_а"}, catalog.SortPriceAsc)
	if len(args) != 1 || args[0] != `%50\%\_а%` {
		t.Errorf("args = %v, want escaped pattern", args)
	}
}

func TestBuildListQuery_TypeAndDiameter(t *testing.T) {
	query, args := buildListQuery(catalog.Filter{
		Type:     "Осевой",
		Diameter: fl(250),
	}, catalog.SortPriceAsc)

	if !strings.Contains(query, "type = $1") || !strings.Contains(query, "diameter = $2") {
		t.Errorf("equality conditions missing: %q", query)
	}
	if args[0] != "Осевой" || args[1] != 250.0 {
		t.Errorf("args = %v", args)
	}
}

func TestBuildListQuery_AllConditionsANDed(t *testing.T) {
	query, args := buildListQuery(catalog.Filter{
		Query:       "во",
		Type:        "Осевой",
		MinPrice:    fl(1),
		MaxPrice:    fl(2),
		MinAirflow:  fl(3),
		MaxPressure: fl(4),
	}, catalog.SortPriceAsc)

	if got := strings.Count(query, " AND "); got < 5 {
		t.Errorf("expected at least 5 ANDs joining 6 conditions, got %d: %q", got, query)
	}
	if len(args) != 6 {
		t.Errorf("args = %d, want 6", len(args))
	}
}
