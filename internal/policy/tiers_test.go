package policy

import "testing"

func TestParseTier(t *testing.T) {
	for _, valid := range []string{"tier_1_read", "tier_2_write_limited", "tier_3_write_elevated", "tier_4_policy"} {
		if _, ok := ParseTier(valid); !ok {
			t.Errorf("ParseTier(%q) = false, want true", valid)
		}
	}
	for _, invalid := range []string{"", "tier_5_root", "Tier_1_Read", "read"} {
		if _, ok := ParseTier(invalid); ok {
			t.Errorf("ParseTier(%q) = true, want false", invalid)
		}
	}
}

func TestTier_Satisfies(t *testing.T) {
	cases := []struct {
		declared, required Tier
		want               bool
	}{
		{Tier1Read, Tier1Read, true},
		{Tier1Read, Tier2WriteLimited, false},
		{Tier2WriteLimited, Tier1Read, true},
		{Tier2WriteLimited, Tier3WriteElevated, false},
		{Tier3WriteElevated, Tier1Read, true},
		{Tier3WriteElevated, Tier2WriteLimited, true},
		{Tier3WriteElevated, Tier3WriteElevated, true},

		// tier_4_policy is incomparable with the write tiers.
		{Tier4Policy, Tier1Read, true},
		{Tier4Policy, Tier2WriteLimited, false},
		{Tier4Policy, Tier3WriteElevated, false},
		{Tier4Policy, Tier4Policy, true},
		{Tier3WriteElevated, Tier4Policy, false},
		{Tier1Read, Tier4Policy, false},
	}
	for _, tc := range cases {
		if got := tc.declared.Satisfies(tc.required); got != tc.want {
			t.Errorf("%s.Satisfies(%s) = %v, want %v", tc.declared, tc.required, got, tc.want)
		}
	}
}

func TestCapabilities_TierSanity(t *testing.T) {
	for name, class := range Capabilities {
		if _, ok := ParseTier(string(class.MinTier)); !ok {
			t.Errorf("capability %s has invalid minimum tier %q", name, class.MinTier)
		}
		if class.Executable && class.MinTier != Tier3WriteElevated {
			t.Errorf("executable capability %s must require tier_3_write_elevated, has %s", name, class.MinTier)
		}
	}
}
