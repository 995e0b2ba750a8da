// Package nist names the materials available from the Geant4 NIST
// material database.
package nist

import (
	"sort"
	"strings"
)

// Prefix is the namespace token every NIST material name carries.
const Prefix = "G4_"

var elements = []string{
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th",
	"Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf",
}

var compounds = []string{
	"AIR", "Galactic", "WATER", "WATER_VAPOR", "CONCRETE", "GLASS_PLATE",
	"GLASS_LEAD", "Pyrex_Glass", "STAINLESS-STEEL", "BRASS", "BRONZE",
	"KAPTON", "MYLAR", "NYLON-6-6", "POLYETHYLENE", "POLYSTYRENE",
	"POLYPROPYLENE", "PLEXIGLASS", "TEFLON", "PARAFFIN", "GRAPHITE",
	"PLASTIC_SC_VINYLTOLUENE", "PbWO4", "BGO", "CESIUM_IODIDE",
	"SODIUM_IODIDE", "LITHIUM_FLUORIDE", "BARIUM_FLUORIDE", "CALCIUM_FLUORIDE",
	"SILICON_DIOXIDE", "ALUMINUM_OXIDE", "LEAD_OXIDE", "URANIUM_OXIDE",
	"lH2", "lN2", "lO2", "lAr", "lKr", "lXe", "PbI2",
	"BONE_COMPACT_ICRU", "BONE_CORTICAL_ICRP", "MUSCLE_SKELETAL_ICRP",
	"TISSUE_SOFT_ICRP", "ADIPOSE_TISSUE_ICRP", "BLOOD_ICRP", "LUNG_ICRP",
	"BRAIN_ICRP", "SKIN_ICRP", "A-150_TISSUE", "B-100_BONE",
}

var known = func() map[string]struct{} {
	m := make(map[string]struct{}, len(elements)+len(compounds))
	for _, n := range elements {
		m[Prefix+n] = struct{}{}
	}
	for _, n := range compounds {
		m[Prefix+n] = struct{}{}
	}
	return m
}()

// Canonical returns the namespaced form of a material name: "Si", "G4Si"
// and "G4_Si" all become "G4_Si".
func Canonical(name string) string {
	n := strings.TrimSpace(name)
	switch {
	case strings.HasPrefix(n, Prefix):
		n = strings.TrimPrefix(n, Prefix)
	case strings.HasPrefix(n, "G4"):
		n = strings.TrimPrefix(n, "G4")
	}
	return Prefix + n
}

// Known reports whether a canonical name is in the database.
func Known(canonical string) bool {
	_, ok := known[canonical]
	return ok
}

// Names lists every canonical material name, sorted.
func Names() []string {
	out := make([]string, 0, len(known))
	for n := range known {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
