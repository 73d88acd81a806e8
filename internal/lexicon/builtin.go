package lexicon

// builtin returns a fresh copy of the tables shipped with the engine.
func builtin() File {
	return File{
		Syllables: map[string][]string{
			// courtesy words
			"salamat":   {"sa", "la", "mat"},
			"kumusta":   {"ku", "mus", "ta"},
			"magkano":   {"mag", "ka", "no"},
			"puwede":    {"pu", "we", "de"},
			"pwede":     {"pwe", "de"},
			"magandang": {"ma", "gan", "dang"},

			"meron": {"me", "ron"},
			"kayo":  {"ka", "yo"},
			"tawad": {"ta", "wad"},
			"balik": {"ba", "lik"},
			"ako":   {"a", "ko"},
			"lahat": {"la", "hat"},

			// particles
			"nga":  {"nga"},
			"lang": {"lang"},
			"po":   {"po"},
			"ba":   {"ba"},
		},
		Loanwords: []string{
			"souvenir", "camera", "hotel", "restaurant", "photo", "selfie",
			"budget", "wifi", "internet", "password", "menu", "receipt",
		},
		Clusters: []string{
			"pr", "pl", "br", "bl", "tr", "dr", "kr", "kl", "gr", "gl", "fl", "fr",
		},
		ForeignDigraphs: []string{"th", "sh", "ch", "ck"},
		ForeignSuffixes: []string{"tion", "sion", "ment", "ness", "ing", "ed"},
	}
}
