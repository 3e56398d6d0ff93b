package versification

// codesByName maps English book directory names, as found in older corpora,
// to USFM codes. Deuterocanonical books are included even though the KJV
// table does not cover them.
var codesByName = map[string]string{
	"Genesis":            "GEN",
	"Exodus":             "EXO",
	"Leviticus":          "LEV",
	"Numbers":            "NUM",
	"Deuteronomy":        "DEU",
	"Joshua":             "JOS",
	"Judges":             "JDG",
	"Ruth":               "RUT",
	"I Samuel":           "1SA",
	"II Samuel":          "2SA",
	"I Kings":            "1KI",
	"II Kings":           "2KI",
	"I Chronicles":       "1CH",
	"II Chronicles":      "2CH",
	"Ezra":               "EZR",
	"Nehemiah":           "NEH",
	"Esther":             "EST",
	"Job":                "JOB",
	"Psalms":             "PSA",
	"Proverbs":           "PRO",
	"Ecclesiastes":       "ECC",
	"Song of Solomon":    "SNG",
	"Song of Songs":      "SNG",
	"Isaiah":             "ISA",
	"Jeremiah":           "JER",
	"Lamentations":       "LAM",
	"Ezekiel":            "EZK",
	"Daniel":             "DAN",
	"Hosea":              "HOS",
	"Joel":               "JOL",
	"Amos":               "AMO",
	"Obadiah":            "OBA",
	"Jonah":              "JON",
	"Micah":              "MIC",
	"Nahum":              "NAM",
	"Habakkuk":           "HAB",
	"Zephaniah":          "ZEP",
	"Haggai":             "HAG",
	"Zechariah":          "ZEC",
	"Malachi":            "MAL",
	"Matthew":            "MAT",
	"Mark":               "MRK",
	"Luke":               "LUK",
	"John":               "JHN",
	"Acts":               "ACT",
	"Romans":             "ROM",
	"I Corinthians":      "1CO",
	"II Corinthians":     "2CO",
	"Galatians":          "GAL",
	"Ephesians":          "EPH",
	"Philippians":        "PHP",
	"Colossians":         "COL",
	"I Thessalonians":    "1TH",
	"II Thessalonians":   "2TH",
	"I Timothy":          "1TI",
	"II Timothy":         "2TI",
	"Titus":              "TIT",
	"Philemon":           "PHM",
	"Hebrews":            "HEB",
	"James":              "JAS",
	"I Peter":            "1PE",
	"II Peter":           "2PE",
	"I John":             "1JN",
	"II John":            "2JN",
	"III John":           "3JN",
	"Jude":               "JUD",
	"Revelation of John": "REV",

	"Additions to Esther": "ESG",
	"Esther (Greek)":      "ESG",
	"Additions to Daniel": "DAG",
	"Baruch":              "BAR",
	"Bel and the Dragon":  "BEL",
	"I Esdras":            "1ES",
	"II Esdras":           "2ES",
	"I Maccabees":         "1MA",
	"II Maccabees":        "2MA",
	"III Maccabees":       "3MA",
	"IV Maccabees":        "4MA",
	"Judith":              "JDT",
	"Prayer of Azariah":   "S3Y",
	"Prayer of Manasses":  "MAN",
	"Sirach":              "SIR",
	"Susanna":             "SUS",
	"Tobit":               "TOB",
	"Wisdom":              "WIS",
	"Jeremy’s Letter":     "LJE",
	"Letter of Jeremiah":  "LJE",
	"Epistle of Jeremiah": "LJE",
	"Psalm 151":           "PS2",
	"Additional Psalm":    "PS2",
	"Laodiceans":          "LAO",
	"Psalms of Solomon":   "PSS",
	"I Enoch":             "ENO",
	"Odes":                "ODE",
}

// CodeForName returns the USFM code for an English book name.
func CodeForName(name string) (string, bool) {
	code, ok := codesByName[name]
	return code, ok
}

// IsCode reports whether s is a code that CodeForName can produce.
func IsCode(s string) bool {
	if _, ok := byCode[s]; ok {
		return true
	}
	for _, code := range codesByName {
		if code == s {
			return true
		}
	}
	return false
}
