package contract

import (
	"fmt"
	"strings"
)

// Grade is a V-scale bouldering grade, V0 (easiest) to V17.
type Grade string

const (
	GradeV0  Grade = "V0"
	GradeV1  Grade = "V1"
	GradeV2  Grade = "V2"
	GradeV3  Grade = "V3"
	GradeV4  Grade = "V4"
	GradeV5  Grade = "V5"
	GradeV6  Grade = "V6"
	GradeV7  Grade = "V7"
	GradeV8  Grade = "V8"
	GradeV9  Grade = "V9"
	GradeV10 Grade = "V10"
	GradeV11 Grade = "V11"
	GradeV12 Grade = "V12"
	GradeV13 Grade = "V13"
	GradeV14 Grade = "V14"
	GradeV15 Grade = "V15"
	GradeV16 Grade = "V16"
	GradeV17 Grade = "V17"
)

// Grades returns every grade ordered by difficulty.
func Grades() []Grade {
	return []Grade{
		GradeV0, GradeV1, GradeV2, GradeV3, GradeV4, GradeV5,
		GradeV6, GradeV7, GradeV8, GradeV9, GradeV10, GradeV11,
		GradeV12, GradeV13, GradeV14, GradeV15, GradeV16, GradeV17,
	}
}

// ParseGrade accepts "V7" or "v7".
func ParseGrade(s string) (Grade, error) {
	g := Grade(strings.ToUpper(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("unknown grade %q", s)
	}
	return g, nil
}

func (g Grade) Valid() bool {
	return g.Difficulty() >= 0
}

// Difficulty maps the grade onto 0..17; it is -1 for an invalid grade.
func (g Grade) Difficulty() int {
	switch g {
	case GradeV0:
		return 0
	case GradeV1:
		return 1
	case GradeV2:
		return 2
	case GradeV3:
		return 3
	case GradeV4:
		return 4
	case GradeV5:
		return 5
	case GradeV6:
		return 6
	case GradeV7:
		return 7
	case GradeV8:
		return 8
	case GradeV9:
		return 9
	case GradeV10:
		return 10
	case GradeV11:
		return 11
	case GradeV12:
		return 12
	case GradeV13:
		return 13
	case GradeV14:
		return 14
	case GradeV15:
		return 15
	case GradeV16:
		return 16
	case GradeV17:
		return 17
	}
	return -1
}

// Tier is the display band: 0 for V0-V2, 1 for V3-V5, 2 for V6-V8,
// 3 for V9-V11 and 4 for V12 and up. Invalid grades report -1.
func (g Grade) Tier() int {
	d := g.Difficulty()
	switch {
	case d < 0:
		return -1
	case d <= 2:
		return 0
	case d <= 5:
		return 1
	case d <= 8:
		return 2
	case d <= 11:
		return 3
	default:
		return 4
	}
}

func (g Grade) Color() Color {
	switch g.Tier() {
	case 0:
		return ColorGreen
	case 1:
		return ColorBlue
	case 2:
		return ColorOrange
	case 3:
		return ColorRed
	case 4:
		return ColorPurple
	}
	return ColorNone
}

// Compare orders grades by difficulty, returning -1, 0 or +1.
func (g Grade) Compare(other Grade) int {
	a, b := g.Difficulty(), other.Difficulty()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (g Grade) MarshalJSON() ([]byte, error) {
	return encodeEnum(g, "grade", Grade.Valid)
}

func (g *Grade) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, "grade", Grade.Valid)
	if err != nil {
		return err
	}
	*g = v
	return nil
}
