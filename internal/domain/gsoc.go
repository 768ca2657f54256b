package domain

// GSOCOrganization describes a Google Summer of Code organization.
// Only Name is populated today; the remaining fields are kept for a future directory source.
type GSOCOrganization struct {
	Name         string   `json:"name"`
	GitHubOrg    string   `json:"github_org,omitempty"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Website      string   `json:"website"`
}

// gsocHandles is the fixed allow-list. "gnome" and "GNOME" are both listed on purpose.
var gsocHandles = []string{
	"apache",
	"kubernetes",
	"numfocus",
	"gnome",
	"KDE",
	"blender",
	"mozilla",
	"python",
	"eclipse",
	"debian",
	"OSGeo",
	"chromium",
	"gitlab-org",
	"wikimedia",
	"osrf",
	"GNOME",
	"inkscape",
	"LibreOffice",
	"OWASP",
	"qemu",
	"ceph",
	"boostorg",
	"llvm",
	"opencv",
	"tensorflow",
}

// GSOCHandles returns a copy of the organization handles in their fixed order.
func GSOCHandles() []string {
	return append([]string(nil), gsocHandles...)
}

// GSOCOrganizations returns the allow-list as organization descriptors.
func GSOCOrganizations() []GSOCOrganization {
	orgs := make([]GSOCOrganization, 0, len(gsocHandles))
	for _, h := range gsocHandles {
		orgs = append(orgs, NewGSOCOrganization(h))
	}
	return orgs
}

// NewGSOCOrganization builds the minimal descriptor attached to tagged repositories.
func NewGSOCOrganization(name string) GSOCOrganization {
	return GSOCOrganization{
		Name:         name,
		Technologies: []string{},
	}
}
