package physics

import (
	"fmt"
	"sort"
	"strings"
)

// Default is selected when a configuration names no physics list.
const Default = "FTFP_BERT"

// List describes one reference physics list.
type List struct {
	Name        string
	Description string
}

// UnknownPhysicsListError reports a physics-list name outside the catalog.
type UnknownPhysicsListError struct {
	Name string
}

func (e *UnknownPhysicsListError) Error() string {
	return fmt.Sprintf("physics: unknown physics list %q (available: %s)", e.Name, strings.Join(Names(), ", "))
}

var catalog = map[string]List{}

func register(name, description string) {
	catalog[name] = List{Name: name, Description: description}
}

func init() {
	register("FTFP_BERT", "Fritiof string + Bertini cascade; general purpose HEP")
	register("FTFP_BERT_HP", "FTFP_BERT with high precision neutron transport below 20 MeV")
	register("FTFP_BERT_EMZ", "FTFP_BERT with option 4 electromagnetic physics")
	register("FTFP_INCLXX", "Fritiof string + Liege intranuclear cascade")
	register("FTF_BIC", "Fritiof string + binary cascade")
	register("QGSP_BERT", "quark-gluon string + Bertini cascade")
	register("QGSP_BERT_HP", "QGSP_BERT with high precision neutron transport")
	register("QGSP_BIC", "quark-gluon string + binary cascade")
	register("QGSP_BIC_HP", "QGSP_BIC with high precision neutron transport; medical")
	register("QGSP_FTFP_BERT", "QGSP with FTFP below 25 GeV")
	register("QGSP_INCLXX", "quark-gluon string + Liege intranuclear cascade")
	register("QGS_BIC", "quark-gluon string + binary cascade, no precompound")
	register("QBBC", "binary cascade + Bertini; space and medical")
	register("Shielding", "neutron shielding and deep penetration")
	register("ShieldingLEND", "Shielding with LEND neutron data")
	register("LBE", "low background experiments")
	register("NuBeam", "neutrino beam line production")
}

// Lookup returns the catalog entry for an exact name.
func Lookup(name string) (List, error) {
	l, ok := catalog[name]
	if !ok {
		return List{}, &UnknownPhysicsListError{Name: name}
	}
	return l, nil
}

// Names lists the catalog alphabetically.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every entry ordered by name.
func All() []List {
	out := make([]List, 0, len(catalog))
	for _, name := range Names() {
		out = append(out, catalog[name])
	}
	return out
}
