package check

import (
	"strings"
	"testing"

	"github.com/cliang-dev/vpress/internal/encoder"
)

func TestTestEncodeArgs(t *testing.T) {
	for _, name := range encoder.Names() {
		t.Run(name, func(t *testing.T) {
			enc, err := encoder.New(name)
			if err != nil {
				t.Fatal(err)
			}
			args := testEncodeArgs(enc)
			joined := strings.Join(args, " ")

			if !strings.Contains(joined, "-c:v "+enc.Codec()) {
				t.Errorf("args missing codec: %s", joined)
			}
			if !strings.Contains(joined, "lavfi") {
				t.Errorf("args missing synthetic source: %s", joined)
			}
			if strings.Contains(joined, "unused") {
				t.Errorf("real input/output paths leaked into test encode: %s", joined)
			}
			if args[len(args)-1] != "-" || args[len(args)-2] != "null" {
				t.Errorf("args must end with a null sink: %s", joined)
			}
		})
	}
}
