package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/verteidiq/assessor/pkg/domain/model"
)

func TestAssignVariant(t *testing.T) {
	// hash("ab") = 3105, hash("ac") = 3106, hash("ad") = 3107
	gt.Value(t, model.AssignVariant("a", "b", nil)).Equal("control")
	gt.Value(t, model.AssignVariant("a", "c", nil)).Equal("variant_a")
	gt.Value(t, model.AssignVariant("a", "d", nil)).Equal("variant_b")
	gt.Value(t, model.AssignVariant("a", "b", []string{"x", "y"})).Equal("y")
}

func TestAssignVariant_StableAndInRange(t *testing.T) {
	variants := []string{"control", "variant_a"}
	seen := map[string]bool{}
	for _, session := range []string{
		"8c2b0e5e-4d7f-4b0a-9d7e-2f1c3b4a5d6e",
		"session-with-a-rather-long-identifier-that-overflows-int32-many-times",
		"ünïcødé-séssion",
		"",
	} {
		v := model.AssignVariant(session, "hero_cta", variants)
		gt.Value(t, model.AssignVariant(session, "hero_cta", variants)).Equal(v)
		seen[v] = true
		gt.Bool(t, v == "control" || v == "variant_a").True()
	}
}
