package panchang

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Name is a Malayalam name with its English transliteration.
type Name struct {
	Malayalam string `json:"malayalam"`
	English   string `json:"english"`
}

// Nakshatra is one of the 27 lunar mansions, 0 = Aswathi.
type Nakshatra int

// NakshatraCount is the number of lunar mansions.
const NakshatraCount = 27

// Revathi is the last nakshatra.
const Revathi Nakshatra = 26

var nakshatraNames = [NakshatraCount]Name{
	{"അശ്വതി", "Aswathi"},
	{"ഭരണി", "Bharani"},
	{"കാർത്തിക", "Karthika"},
	{"രോഹിണി", "Rohini"},
	{"മകയിരം", "Makayiram"},
	{"തിരുവാതിര", "Thiruvathira"},
	{"പുണർതം", "Punartham"},
	{"പൂയം", "Pooyam"},
	{"ആയില്യം", "Ayilyam"},
	{"മകം", "Makam"},
	{"പൂരം", "Pooram"},
	{"ഉത്രം", "Uthram"},
	{"അത്തം", "Atham"},
	{"ചിത്തിര", "Chithira"},
	{"ചോതി", "Chothi"},
	{"വിശാഖം", "Vishakham"},
	{"അനിഴം", "Anizham"},
	{"തൃക്കേട്ട", "Thrikketta"},
	{"മൂലം", "Moolam"},
	{"പൂരാടം", "Pooradam"},
	{"ഉത്രാടം", "Uthradam"},
	{"തിരുവോണം", "Thiruvonam"},
	{"അവിട്ടം", "Avittam"},
	{"ചതയം", "Chathayam"},
	{"പൂരുരുട്ടാതി", "Pooruruttathi"},
	{"ഉത്രട്ടാതി", "Uthrattathi"},
	{"രേവതി", "Revathi"},
}

// Valid reports whether n is within 0..26.
func (n Nakshatra) Valid() bool {
	return n >= 0 && n < NakshatraCount
}

// Name returns the names of a valid nakshatra.
func (n Nakshatra) Name() Name {
	if !n.Valid() {
		return Name{}
	}
	return nakshatraNames[n]
}

func (n Nakshatra) String() string {
	if !n.Valid() {
		return fmt.Sprintf("Nakshatra(%d)", int(n))
	}
	return nakshatraNames[n].English
}

// Month is a zodiacal solar month, 0 = Medam (sidereal Aries).
type Month int

// The Kollam era year begins with Chingam.
const (
	Medam Month = iota
	Edavam
	Midhunam
	Karkidakam
	Chingam
	Kanni
	Thulam
	Vrischikam
	Dhanu
	Makaram
	Kumbham
	Meenam
)

// MonthCount is the number of solar months.
const MonthCount = 12

var monthNames = [MonthCount]Name{
	{"മേടം", "Medam"},
	{"ഇടവം", "Edavam"},
	{"മിഥുനം", "Midhunam"},
	{"കർക്കിടകം", "Karkidakam"},
	{"ചിങ്ങം", "Chingam"},
	{"കന്നി", "Kanni"},
	{"തുലാം", "Thulam"},
	{"വൃശ്ചികം", "Vrischikam"},
	{"ധനു", "Dhanu"},
	{"മകരം", "Makaram"},
	{"കുംഭം", "Kumbham"},
	{"മീനം", "Meenam"},
}

// Valid reports whether m is within 0..11.
func (m Month) Valid() bool {
	return m >= 0 && m < MonthCount
}

// Name returns the names of a valid month.
func (m Month) Name() Name {
	if !m.Valid() {
		return Name{}
	}
	return monthNames[m]
}

func (m Month) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return monthNames[m].English
}

// foldName normalizes user input for name matching: NFC composition (so
// decomposed Malayalam input compares equal) then Unicode case folding.
func foldName(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

func foldTable(names []Name) [][2]string {
	out := make([][2]string, len(names))
	for i, n := range names {
		out[i] = [2]string{foldName(n.Malayalam), foldName(n.English)}
	}
	return out
}

var (
	foldedNakshatras = foldTable(nakshatraNames[:])
	foldedMonths     = foldTable(monthNames[:])
)

func lookupName(table [][2]string, s string) (int, bool) {
	if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return i, i >= 0 && i < len(table)
	}
	key := foldName(s)
	if key == "" {
		return -1, false
	}
	for i, names := range table {
		if names[0] == key || names[1] == key {
			return i, true
		}
	}
	return -1, false
}

// ParseNakshatra resolves an English or Malayalam name, in any case, or a
// decimal index.
func ParseNakshatra(s string) (Nakshatra, error) {
	i, ok := lookupName(foldedNakshatras, s)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNakshatra, s)
	}
	return Nakshatra(i), nil
}

// ParseMonth resolves an English or Malayalam month name, in any case, or a
// decimal index (0 = Medam).
func ParseMonth(s string) (Month, error) {
	i, ok := lookupName(foldedMonths, s)
	if !ok {
		return 0, fmt.Errorf("%w: unknown month %q", ErrInvalidInput, s)
	}
	return Month(i), nil
}
