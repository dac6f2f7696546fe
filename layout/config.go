package layout

import "errors"

// Config holds the page geometry, in points. The defaults reproduce a 1200
// point wide page with room for three staff systems.
type Config struct {
	PageWidth      float64 `yaml:"pagewidth"`
	LeftMargin     float64 `yaml:"leftmargin"`
	RightMargin    float64 `yaml:"rightmargin"`
	TopMargin      float64 `yaml:"topmargin"`
	StaffSpacing   float64 `yaml:"staffspacing"` // distance between two staff lines
	BeatWidth      float64 `yaml:"beatwidth"`    // horizontal advance per beat of the previous note
	CompactWidth   float64 `yaml:"compactwidth"` // advance after quavers and semiquavers
	SharpWidth     float64 `yaml:"sharpwidth"`
	FlatWidth      float64 `yaml:"flatwidth"`
	HeadWidth      float64 `yaml:"headwidth"`
	HeadHeight     float64 `yaml:"headheight"`
	DotSize        float64 `yaml:"dotsize"`
	StemHeight     float64 `yaml:"stemheight"`
	LegerHalfWidth float64 `yaml:"legerhalfwidth"`
	MaxSystems     int     `yaml:"maxsystems"`
}

// TopLinePosition is the staff position of the top line of the treble staff,
// F an octave above middle C.
const TopLinePosition = 10

// bottomLinePosition is E above middle C.
const bottomLinePosition = 2

func DefaultConfig() Config {
	return Config{
		PageWidth:      1200,
		LeftMargin:     50,
		RightMargin:    50,
		TopMargin:      50,
		StaffSpacing:   10,
		BeatWidth:      30,
		CompactWidth:   20,
		SharpWidth:     13,
		FlatWidth:      10,
		HeadWidth:      10,
		HeadHeight:     7,
		DotSize:        2.5,
		StemHeight:     30,
		LegerHalfWidth: 10,
		MaxSystems:     3,
	}
}

// Validate checks that the geometry leaves room for at least one note.
func (c Config) Validate() error {
	for _, v := range []float64{c.PageWidth, c.StaffSpacing, c.BeatWidth, c.CompactWidth, c.HeadWidth, c.HeadHeight, c.StemHeight} {
		if v <= 0 {
			return errors.New("layout sizes must be positive")
		}
	}
	for _, v := range []float64{c.LeftMargin, c.RightMargin, c.TopMargin, c.SharpWidth, c.FlatWidth, c.DotSize, c.LegerHalfWidth} {
		if v < 0 {
			return errors.New("layout margins and allowances cannot be negative")
		}
	}
	if c.MaxSystems < 1 {
		return errors.New("a page needs at least one staff system")
	}
	if c.LeftMargin+c.BeatWidth+c.SharpWidth > c.PageWidth-c.RightMargin {
		return errors.New("page is too narrow for a single note")
	}
	return nil
}

// Right is the x coordinate of the right margin, where staff lines end.
func (c Config) Right() float64 { return c.PageWidth - c.RightMargin }

// SystemGap is the vertical space left between two staff systems.
func (c Config) SystemGap() float64 { return 3 * c.StaffSpacing }
