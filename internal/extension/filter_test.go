package extension

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterAllows(t *testing.T) {
	installedCore := Record{Installed: true, Origin: OriginCore}
	installedContrib := Record{Installed: true, Origin: "contrib"}
	uninstalledCore := Record{Origin: OriginCore}
	uninstalledCustom := Record{Origin: "custom"}
	all := []Record{installedCore, installedContrib, uninstalledCore, uninstalledCustom}

	tests := []struct {
		name   string
		filter Filter
		want   []bool
	}{
		{"zero", Filter{}, []bool{false, false, false, false}},
		{"status only", Filter{Installed: true, Uninstalled: true}, []bool{false, false, false, false}},
		{"origin only", Filter{Core: true, NonCore: true}, []bool{false, false, false, false}},
		{"installed core", Filter{Installed: true, Core: true}, []bool{true, false, false, false}},
		{"uninstalled any", Filter{Uninstalled: true, Core: true, NonCore: true}, []bool{false, false, true, true}},
		{"all", Filter{true, true, true, true}, []bool{true, true, true, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, r := range all {
				assert.Equal(t, tt.want[i], tt.filter.Allows(r), "record %d", i)
			}
		})
	}
}

func TestFilterIsZero(t *testing.T) {
	assert.True(t, Filter{}.IsZero())
	assert.False(t, Filter{NonCore: true}.IsZero())
}
