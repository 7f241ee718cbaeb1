package land

import (
	"fmt"
	"os"

	"github.com/dagster-io/workstack/internal/utils"
)

// WriteActivationScript writes a short shell script that moves the
// operator's shell into dir and reinitializes its environment (virtualenv,
// .env). The caller is a shell wrapper function that sources the file whose
// path we print, which is why the script must be self-contained and silent.
func WriteActivationScript(dir string) (string, error) {
	f, err := os.CreateTemp("", "workstack-activate-*.sh")
	if err != nil {
		return "", fmt.Errorf("failed to create activation script: %v", err)
	}
	defer f.Close()

	script := fmt.Sprintf(`cd %s
if [ -f .venv/bin/activate ]; then
  . .venv/bin/activate
fi
if [ -f .env ]; then
  set -a
  . ./.env
  set +a
fi
`, utils.ShellQuote(dir))

	if _, err := f.WriteString(script); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write activation script: %v", err)
	}
	return f.Name(), nil
}
