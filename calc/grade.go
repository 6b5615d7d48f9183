package calc

// PassingGrade is the lowest final grade that passes
const PassingGrade = 60

// Scores are the components of a final grade
type Scores struct {
	Kuis      float64
	Kehadiran float64
	Responsi1 float64
	Responsi2 float64
	UTS       float64
	UAS       float64
}

// ResponsiAverage is the mean of the two responsi scores
func (s Scores) ResponsiAverage() float64 {
	return (s.Responsi1 + s.Responsi2) / 2
}

// FinalGrade weighs the components 20% quiz, 10% attendance,
// 20% responsi average, 25% midterm and 25% final exam.
func FinalGrade(s Scores) float64 {
	return 0.2*s.Kuis + 0.1*s.Kehadiran + 0.2*s.ResponsiAverage() + 0.25*s.UTS + 0.25*s.UAS
}

// Passed reports whether grade reaches PassingGrade
func Passed(grade float64) bool {
	return grade >= PassingGrade
}

// Status is the verdict printed under the grade
func Status(grade float64) string {
	if Passed(grade) {
		return "LULUS"
	}
	return "TIDAK LULUS"
}
