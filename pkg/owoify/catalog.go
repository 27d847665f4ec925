package owoify

import "strings"

const (
	openTrail  = "｡･:*:･ﾟ★,｡･:*:･ﾟ☆"
	closeTrail = "☆ﾟ･:*:･｡,★ﾟ･:*:･｡"
)

// SpecificWordRules run on every word regardless of level.
var SpecificWordRules = []Rule{
	rule("fuc_to_fwuc", sub(`([Ff])uc`, "$1wuc")),
	rule("mom_to_mwom", sub(`([Mm])om`, "$1wom")),
	rule("time_to_tim", sub(`\b([Tt])ime\b`, "$1im")),
	rule("me_to_mwe", sub(`([Mm])e`, "$1we")),
	rule("n_vowel_to_ny",
		sub(`n([aeiou])`, "ny$1"),
		sub(`N([aeiou])`, "Ny$1"),
		sub(`N([AEIOU])`, "NY$1"),
	),
	rule("over_to_owor", sub(`([Oo])ver`, "$1wor")),
	rule("ove_to_uv",
		sub(`ove`, "uv"),
		sub(`OVE`, "UV"),
	),
	rule("haha_to_hehe_xd", sub(`\b(ha|hah|heh|hehe)+\b`, "hehe xD")),
	rule("the_to_teh", sub(`\b([Tt])he\b`, "$1eh")),
	rule("you_to_u",
		sub(`\bYou\b`, "U"),
		sub(`\byou\b`, "u"),
	),
	rule("read_to_wead",
		sub(`Read`, "Wead"),
		sub(`read`, "wead"),
	),
	rule("worse_to_wose", sub(`([Ww])orse`, "$1ose")),
	rule("that_to_dat",
		sub(`that`, "dat"),
		sub(`That`, "Dat"),
	),
}

// Tier1Rules are the lightest tier and run at every level.
var Tier1Rules = []Rule{
	rule("o_to_owo", subWith(`o`, PerMatch("owo", func(p *Picker) string {
		if p.Coin() {
			return "owo"
		}
		return "o"
	}))),
	rule("ew_to_uwu", sub(`ew`, "uwu")),
	rule("hey_to_hay", sub(`([Hh])ey`, "$1ay")),
	rule("dead_to_ded",
		sub(`Dead`, "Ded"),
		sub(`dead`, "ded"),
	),
	rule("n_vowel_t_to_nd", sub(`n[aeiou]*t`, "nd")),
}

// Tier2Rules run at Medium and Heavy.
var Tier2Rules = []Rule{
	rule("brackets_to_star_trails",
		sub(`[({<]`, openTrail),
		sub(`[)}>]`, closeTrail),
	),
	rule("punctuation_to_faces",
		subWith(`[.,](?![0-9])`, PerCall(spacedFace)),
		subWith(`[!;]+`, PerCall(spacedFace)),
	),
	rule("th_to_f",
		sub(`[Tt]h(?![Ee])`, "f"),
		sub(`TH(?!E)`, "F"),
	),
	rule("le_to_wal", sub(`le$`, "wal")),
	rule("ve_to_we",
		sub(`ve`, "we"),
		sub(`Ve`, "We"),
	),
	rule("ry_to_wwy", sub(`ry`, "wwy")),
	rule("r_or_l_to_w",
		sub(`(?:r|l)`, "w"),
		sub(`(?:R|L)`, "W"),
	),
}

// Tier3Rules only run at Heavy, after the other tiers.
var Tier3Rules = []Rule{
	rule("ll_to_ww", sub(`ll`, "ww")),
	rule("vowel_or_r_l_to_wl",
		sub(`[aeiur]l$`, "wl"),
		sub(`[AEIUR]([lL])$`, "W$1"),
	),
	rule("old_to_owld",
		sub(`([Oo])ld`, "$1wld"),
		sub(`OLD`, "OWLD"),
	),
	rule("ol_to_owl",
		sub(`([Oo])l`, "$1wl"),
		sub(`OL`, "OWL"),
	),
	rule("l_or_r_o_to_wo",
		sub(`[lr]o`, "wo"),
		sub(`[LR]([oO])`, "W$1"),
	),
	rule("consonant_o_to_wo",
		sub(`([bcdfghjkmnpqstxyz])o`, "$1wo"),
		subWith(`([BCDFGHJKMNPQSTXYZ])([oO])`, Captures(func(consonant, o string) string {
			if o == strings.ToUpper(o) {
				return consonant + "W" + o
			}
			return consonant + "w" + o
		})),
	),
	rule("v_or_w_le_to_wal", sub(`[vw]le`, "wal")),
	rule("fi_to_fwi",
		sub(`([Ff])i`, "$1wi"),
		sub(`FI`, "FWI"),
	),
	rule("ver_to_wer", sub(`([Vv])er`, "wer")),
	rule("poi_to_pwoi", sub(`([Pp])oi`, "$1woi")),
	rule("consonant_le_to_wal", sub(`([DdFfGgHhJjPpQqRrSsTtXxYyZz])le$`, "$1wal")),
	rule("consonant_r_to_w", sub(`([BbCcDdFfGgKkPpQqSsTtWwXxZz])r`, "$1w")),
	rule("ly_to_wy",
		sub(`ly`, "wy"),
		sub(`Ly`, "Wy"),
	),
	rule("ple_to_pwe", sub(`([Pp])le`, "$1we")),
	rule("nr_to_nw",
		sub(`nr`, "nw"),
		sub(`NR`, "NW"),
	),
}

func spacedFace(p *Picker) string {
	return " " + p.Face()
}

// RulesFor returns the tier lists applied at level, in execution order.
// Specific-word rules are not included.
func RulesFor(level Level) [][]Rule {
	switch level {
	case Heavy:
		return [][]Rule{Tier1Rules, Tier2Rules, Tier3Rules}
	case Medium:
		return [][]Rule{Tier1Rules, Tier2Rules}
	default:
		return [][]Rule{Tier1Rules}
	}
}
