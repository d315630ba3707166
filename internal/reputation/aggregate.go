package reputation

import "math"

// Label buckets an average score into its qualitative label.
func Label(rata2 int) string {
	switch {
	case rata2 >= 95:
		return "Sangat Baik"
	case rata2 >= 85:
		return "Baik"
	case rata2 >= 75:
		return "Cukup"
	default:
		return "Perlu Perbaikan"
	}
}

// Summarize derives the aggregate from received scores: arithmetic mean
// rounded to the nearest integer, defaulting to 90 with no entries.
func Summarize(skors []int) Ringkasan {
	if len(skors) == 0 {
		return Ringkasan{Rata2: DefaultSkor, Total: 0, Label: LabelBelumAda}
	}
	sum := 0
	for _, s := range skors {
		sum += s
	}
	rata2 := int(math.Round(float64(sum) / float64(len(skors))))
	return Ringkasan{Rata2: rata2, Total: len(skors), Label: Label(rata2)}
}
