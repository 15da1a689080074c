package components

import "testing"

func TestSparkComponent_Progress(t *testing.T) {
	tests := []struct {
		name    string
		life    int
		maxLife int
		want    float64
	}{
		{"fresh", 10, 10, 0},
		{"half", 5, 10, 0.5},
		{"expired", 0, 10, 1},
		{"overfull clamps", 12, 10, 0},
		{"no max life", 3, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SparkComponent{Life: tt.life, MaxLife: tt.maxLife}
			if got := s.Progress(); got != tt.want {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}
