// Package display abstracts the named output areas of the client as region
// capabilities. The controller and renderer only show, hide and fill
// regions; what a region looks like is up to its implementation.
package display

// Region is a named output area that can be shown, hidden and filled.
type Region interface {
	Show()
	Hide()
	SetContent(content string)
	Visible() bool
}

// Names of the four regions, used in logs and recordings.
const (
	LoadingName = "loading"
	ResultName  = "result"
	ErrorName   = "error"
	ChartName   = "chart"
)

// Regions bundles the four mutually exclusive areas of the client.
type Regions struct {
	Loading Region
	Result  Region
	Error   Region
	Chart   Region
}

// Visible returns the names of the currently visible regions in a fixed order.
func (r Regions) Visible() []string {
	var out []string
	for _, nr := range []struct {
		name string
		reg  Region
	}{
		{LoadingName, r.Loading},
		{ResultName, r.Result},
		{ErrorName, r.Error},
		{ChartName, r.Chart},
	} {
		if nr.reg != nil && nr.reg.Visible() {
			out = append(out, nr.name)
		}
	}
	return out
}
