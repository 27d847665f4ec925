package owoify

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource always returns the same draw. 0 never expands a vowel and picks
// the first face; 0.99 always expands and picks the last one.
type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func fixedOwoifier(v float64) *Owoifier {
	return New(WithPicker(NewPicker(fixedSource(v))))
}

// countingSource records how many draws were taken from it.
type countingSource struct {
	value float64
	draws int
}

func (c *countingSource) Float64() float64 {
	c.draws++
	return c.value
}

func ruleByName(t *testing.T, name string) Rule {
	t.Helper()
	for _, list := range [][]Rule{SpecificWordRules, Tier1Rules, Tier2Rules, Tier3Rules} {
		for _, r := range list {
			if r.Name == name {
				return r
			}
		}
	}
	require.FailNow(t, "no such rule", name)
	return Rule{}
}

func TestSpecificWordRules(t *testing.T) {
	o := fixedOwoifier(0)

	cases := []struct {
		in   string
		want string
	}{
		{"That", "Dat"},
		{"that", "dat"},
		{"the", "teh"},
		{"The", "Teh"},
		{"you", "u"},
		{"You", "U"},
		{"Yourself", "Yourself"},
		{"time", "tim"},
		{"me", "mwe"},
		{"mom", "mwom"},
		{"no", "nyo"},
		{"love", "luv"},
		{"over", "owor"},
		{"read", "wead"},
		{"worse", "wose"},
		{"fuck", "fwuck"},
		{"haha", "hehe xD"},
		{"hahaha", "hehe xD"},
		{"cat", "cat"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, o.OwoifyWord(tc.in, Basic))
		})
	}
}

func TestTier1Rules(t *testing.T) {
	o := fixedOwoifier(0)

	cases := []struct {
		in   string
		want string
	}{
		{"hey", "hay"},
		{"Hey", "Hay"},
		{"dead", "ded"},
		{"Dead", "Ded"},
		{"want", "wand"},
		{"new", "nyuwu"},
		{"foo", "foo"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, o.OwoifyWord(tc.in, Basic))
		})
	}

	t.Run("vowel coin expands every o when it lands on 1", func(t *testing.T) {
		assert.Equal(t, "fowoowo", fixedOwoifier(0.99).OwoifyWord("foo", Basic))
		assert.Equal(t, "mwowom", fixedOwoifier(0.99).OwoifyWord("mom", Basic))
		assert.Equal(t, "nyowo", fixedOwoifier(0.99).OwoifyWord("no", Basic))
	})
}

func TestVowelCoinDrawsOncePerO(t *testing.T) {
	cases := []struct {
		in    string
		draws int
	}{
		{"cat", 0},
		{"dog", 1},
		{"mom", 1},
		{"no", 1},
		{"foo", 2},
		{"over", 2},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			for _, v := range []float64{0, 0.99} {
				src := &countingSource{value: v}
				New(WithPicker(NewPicker(src))).OwoifyWord(tc.in, Basic)
				assert.Equal(t, tc.draws, src.draws, "draw %v", v)
			}
		})
	}
}

func TestVowelCoinIsFair(t *testing.T) {
	const runs = 4000
	o := New(WithPicker(NewPicker(rand.New(rand.NewPCG(3, 7)))))

	// earlier rules leave "o" in their output for mom and no
	for _, word := range []string{"dog", "mom", "no"} {
		t.Run(word, func(t *testing.T) {
			expanded := 0
			for range runs {
				if strings.Contains(o.OwoifyWord(word, Basic), "owo") {
					expanded++
				}
			}
			assert.InDelta(t, 0.5, float64(expanded)/runs, 0.05)
		})
	}
}

func TestTier2Rules(t *testing.T) {
	o := fixedOwoifier(0)
	first := Faces[0]

	cases := []struct {
		in   string
		want string
	}{
		{"hello", "hewwo"},
		{"think", "fink"},
		{"THINK", "FINK"},
		{"every", "ewewwy"},
		{"there!", "thewe " + first},
		{"Hi.", "Hi " + first},
		{"3.14", "3.14"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, o.OwoifyWord(tc.in, Medium))
		})
	}

	t.Run("brackets become star trails", func(t *testing.T) {
		got := o.OwoifyWord("(hi)", Medium)
		assert.Contains(t, got, "｡･:*:･ﾟ★")
		assert.Contains(t, got, "☆ﾟ･:*:･｡")
		assert.NotContains(t, got, "hi)")
	})

	t.Run("exclamation picks from the face table", func(t *testing.T) {
		assert.Equal(t, "Hi "+Faces[len(Faces)-1], fixedOwoifier(0.99).OwoifyWord("Hi!", Medium))
	})

	t.Run("not applied at basic", func(t *testing.T) {
		assert.Equal(t, "hello", o.OwoifyWord("hello", Basic))
		assert.Equal(t, "Hi.", o.OwoifyWord("Hi.", Basic))
	})
}

func TestTier3Rules(t *testing.T) {
	o := fixedOwoifier(0)

	cases := []struct {
		in   string
		want string
	}{
		{"So", "Swo"},
		{"TO", "TWO"},
		{"Sox", "Sox"},
		{"go", "gwo"},
		{"fill", "fwiww"},
		{"poi", "pwoi"},
		{"hello", "hewwo"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, o.OwoifyWord(tc.in, Heavy))
		})
	}

	t.Run("not applied at medium", func(t *testing.T) {
		assert.Equal(t, "So", o.OwoifyWord("So", Medium))
		assert.Equal(t, "go", o.OwoifyWord("go", Medium))
	})
}

func TestRulesInIsolation(t *testing.T) {
	p := NewPicker(fixedSource(0))

	// at Heavy most l and r rules never see their input because r_or_l_to_w
	// runs first, so every substitution is also checked on a fresh word
	cases := []struct {
		rule string
		in   string
		want string
	}{
		{"brackets_to_star_trails", "(hi", openTrail + "hi"},
		{"brackets_to_star_trails", "hi}", "hi" + closeTrail},
		{"brackets_to_star_trails", "<hi>", openTrail + "hi" + closeTrail},
		{"th_to_f", "think", "fink"},
		{"th_to_f", "THINK", "FINK"},
		{"th_to_f", "the", "the"},
		{"le_to_wal", "table", "tabwal"},
		{"le_to_wal", "lemon", "lemon"},
		{"ve_to_we", "save", "sawe"},
		{"ve_to_we", "Vest", "West"},
		{"ry_to_wwy", "sorry", "sorwwy"},
		{"r_or_l_to_w", "Real", "Weaw"},
		{"ll_to_ww", "ball", "baww"},
		{"vowel_or_r_l_to_wl", "pail", "pawl"},
		{"vowel_or_r_l_to_wl", "PAIL", "PAWL"},
		{"vowel_or_r_l_to_wl", "pails", "pails"},
		{"old_to_owld", "bold", "bowld"},
		{"old_to_owld", "BOLD", "BOWLD"},
		{"ol_to_owl", "cola", "cowla"},
		{"ol_to_owl", "COLA", "COWLA"},
		{"l_or_r_o_to_wo", "lot", "wot"},
		{"l_or_r_o_to_wo", "Rome", "Wome"},
		{"l_or_r_o_to_wo", "LOT", "WOT"},
		{"consonant_o_to_wo", "so", "swo"},
		{"consonant_o_to_wo", "TO", "TWO"},
		{"consonant_o_to_wo", "So", "Swo"},
		{"consonant_o_to_wo", "Sox", "Sox"},
		{"v_or_w_le_to_wal", "bowle", "bowal"},
		{"fi_to_fwi", "fish", "fwish"},
		{"fi_to_fwi", "FISH", "FWISH"},
		{"ver_to_wer", "never", "newer"},
		{"ver_to_wer", "Very", "wery"},
		{"poi_to_pwoi", "point", "pwoint"},
		{"poi_to_pwoi", "Poi", "Pwoi"},
		{"consonant_le_to_wal", "apple", "appwal"},
		{"consonant_le_to_wal", "bottle", "bottwal"},
		{"consonant_r_to_w", "bread", "bwead"},
		{"consonant_r_to_w", "tree", "twee"},
		{"ly_to_wy", "only", "onwy"},
		{"ly_to_wy", "Lyre", "Wyre"},
		{"ple_to_pwe", "apples", "appwes"},
		{"ple_to_pwe", "Plenty", "Pwenty"},
		{"nr_to_nw", "henry", "henwy"},
		{"nr_to_nw", "HENRY", "HENWY"},
	}

	for _, tc := range cases {
		t.Run(tc.rule+"/"+tc.in, func(t *testing.T) {
			r := ruleByName(t, tc.rule)
			assert.Equal(t, tc.want, r.Apply(NewWord(tc.in), p).String())
		})
	}
}

func TestRulesFor(t *testing.T) {
	names := func(level Level) []string {
		var out []string
		for _, tier := range RulesFor(level) {
			for _, r := range tier {
				out = append(out, r.Name)
			}
		}
		return out
	}

	basic, medium, heavy := names(Basic), names(Medium), names(Heavy)

	assert.Equal(t, basic, medium[:len(basic)])
	assert.Equal(t, medium, heavy[:len(medium)])
	assert.Len(t, heavy, len(Tier1Rules)+len(Tier2Rules)+len(Tier3Rules))
	assert.Equal(t, Tier3Rules[len(Tier3Rules)-1].Name, heavy[len(heavy)-1])
}

func TestCatalogNamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, list := range [][]Rule{SpecificWordRules, Tier1Rules, Tier2Rules, Tier3Rules} {
		for _, r := range list {
			assert.False(t, seen[r.Name], "duplicate rule %s", r.Name)
			seen[r.Name] = true
			assert.NotEmpty(t, r.Substitutions, r.Name)
		}
	}
}
