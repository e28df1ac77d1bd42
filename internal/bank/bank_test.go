package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/verity/internal/quiz"
)

func TestPrepare(t *testing.T) {
	tests := []struct {
		name    string
		in      quiz.Question
		want    quiz.Question
		wantErr bool
	}{
		{
			name: "normalizes answer",
			in:   quiz.Question{Text: "  Sky is blue ", Answer: "REAL", Reason: " physics "},
			want: quiz.Question{Text: "Sky is blue", Answer: "real", Reason: "physics"},
		},
		{
			name: "legacy legit label",
			in:   quiz.Question{Text: "q", Answer: "Legit"},
			want: quiz.Question{Text: "q", Answer: "real"},
		},
		{name: "empty text", in: quiz.Question{Text: " ", Answer: "fake"}, wantErr: true},
		{name: "bad answer", in: quiz.Question{Text: "q", Answer: "maybe"}, wantErr: true},
		{name: "missing answer", in: quiz.Question{Text: "q"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Prepare(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
