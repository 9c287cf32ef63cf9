package postgres

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const cloneSuffix = " -copie("

var cloneNumber = regexp.MustCompile(`^\(([0-9]+)\)$`)

// nextCloneName picks "<base> -copie(n)" where n is one more than the highest
// suffix among existing, compared case-insensitively. Gaps are not reused.
func nextCloneName(baseName string, existing []string) string {
	prefix := strings.ToUpper(baseName + cloneSuffix)
	highest := 0
	for _, name := range existing {
		upper := strings.ToUpper(name)
		if !strings.HasPrefix(upper, prefix) {
			continue
		}
		m := cloneNumber.FindStringSubmatch(upper[len(prefix)-1:])
		if m == nil {
			continue
		}
		// Suffixes with no successor in int are not ours to continue.
		n, err := strconv.Atoi(m[1])
		if err != nil || n == math.MaxInt {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%s%d)", baseName, cloneSuffix, highest+1)
}

// cloneNamePattern is the LIKE pattern selecting candidate names for baseName.
func cloneNamePattern(baseName string) string {
	escaper := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return strings.ToUpper(escaper.Replace(baseName)) + "%"
}
