package session_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/san-kum/g4basic/internal/backend/recorder"
	"github.com/san-kum/g4basic/internal/engine"
	"github.com/san-kum/g4basic/internal/geometry"
	"github.com/san-kum/g4basic/internal/gun"
	"github.com/san-kum/g4basic/internal/palette"
	"github.com/san-kum/g4basic/internal/physics"
	"github.com/san-kum/g4basic/internal/session"
	"github.com/san-kum/g4basic/internal/units"
)

func energy(v any) *units.Token {
	t := units.Of(v)
	return &t
}

func ops(calls []recorder.Call) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Op
	}
	return out
}

var _ = Describe("Session", func() {
	var (
		rec  *recorder.Recorder
		log  *logrus.Entry
		hook *logtest.Hook
		cfg  session.Config
	)

	BeforeEach(func() {
		rec = recorder.New()
		var logger *logrus.Logger
		logger, hook = logtest.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)
		log = logrus.NewEntry(logger)
		cfg = session.Config{
			PhysicsList: "FTFP_BERT",
			Volumes: map[string]geometry.VolumeSpec{
				"Spect": {
					VolType:    "Tube",
					Material:   "Cu",
					Dimensions: units.Tokens(0.1, "2.5m", "4m"),
					Position:   units.Tokens(0, 0, "5m"),
					Colour:     "red",
				},
				"BB": {
					VolType:    "Box",
					Material:   "Si",
					Dimensions: units.Tokens("10m", "10m", "3m"),
					Position:   units.Tokens(0, 0, 0),
					Colour:     "yellow",
				},
			},
			Gun: &gun.Spec{
				Particle:  "proton",
				Energy:    energy("50GeV"),
				Direction: units.Tokens(0, 0, 1),
				Position:  units.Tokens(0, 0, "-5m"),
			},
		}
	})

	Describe("construction", func() {
		It("selects physics, creates the world, then volumes in name order and the gun", func() {
			s, err := session.New(rec, cfg, log)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.State()).To(Equal(session.Ready))
			Expect(s.PhysicsList()).To(Equal("FTFP_BERT"))

			Expect(ops(rec.Calls())).To(Equal([]string{
				recorder.OpPhysics,
				recorder.OpMaterial, recorder.OpWorld,
				recorder.OpMaterial, recorder.OpVolume, recorder.OpPlace, recorder.OpColour,
				recorder.OpMaterial, recorder.OpVolume, recorder.OpPlace, recorder.OpColour,
				recorder.OpGun, recorder.OpParticle, recorder.OpPosition, recorder.OpEnergy, recorder.OpDirection,
			}))
			volumes := rec.CallsTo(recorder.OpVolume)
			Expect(volumes[0].Target).To(Equal("BB"))
			Expect(volumes[1].Target).To(Equal("Spect"))
		})

		It("defaults the physics list and world", func() {
			cfg.PhysicsList = ""
			s, err := session.New(rec, cfg, log)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.PhysicsList()).To(Equal(physics.Default))
			Expect(s.World().Material).To(Equal("G4_AIR"))
			Expect(s.World().Size).To(Equal(geometry.Vector{X: 20000, Y: 20000, Z: 20000}))
		})

		It("rejects an unknown physics list before touching the backend", func() {
			cfg.PhysicsList = "NOT_A_LIST"
			_, err := session.New(rec, cfg, log)
			var unknown *physics.UnknownPhysicsListError
			Expect(errors.As(err, &unknown)).To(BeTrue())
			Expect(rec.Calls()).To(BeEmpty())
		})

		It("accepts a nil logger", func() {
			_, err := session.New(rec, cfg, nil)
			Expect(err).NotTo(HaveOccurred())
		})

		It("fails on an unknown world material", func() {
			cfg.World = geometry.WorldSpec{Material: "Paisley"}
			_, err := session.New(rec, cfg, log)
			var unknown *engine.UnknownMaterialError
			Expect(errors.As(err, &unknown)).To(BeTrue())
			Expect(unknown.Name).To(Equal("G4_Paisley"))
		})
	})

	Describe("AddVolume", func() {
		var s *session.Session

		BeforeEach(func() {
			var err error
			s, err = session.New(rec, session.Config{}, log)
			Expect(err).NotTo(HaveOccurred())
			rec.Reset()
		})

		It("fails fast on an unsupported type without calling the backend", func() {
			err := s.AddVolume("tet", geometry.VolumeSpec{
				VolType:    "Tetrahedron",
				Material:   "Si",
				Dimensions: units.Tokens("1m"),
			})
			var unsupported *geometry.UnsupportedVolumeTypeError
			Expect(errors.As(err, &unsupported)).To(BeTrue())
			Expect(unsupported.Type).To(Equal("Tetrahedron"))
			Expect(rec.Calls()).To(BeEmpty())
		})

		It("rejects a wrong dimension count without calling the backend", func() {
			err := s.AddVolume("b", geometry.VolumeSpec{VolType: "Box", Material: "Si", Dimensions: units.Tokens("1m")})
			var arity *geometry.ArityError
			Expect(errors.As(err, &arity)).To(BeTrue())
			Expect(rec.Calls()).To(BeEmpty())
		})

		It("reports unknown materials", func() {
			err := s.AddVolume("b", geometry.VolumeSpec{VolType: "Orb", Material: "Kryptonite", Dimensions: units.Tokens(1)})
			var unknown *engine.UnknownMaterialError
			Expect(errors.As(err, &unknown)).To(BeTrue())
		})

		It("overwrites a volume re-added under the same name", func() {
			Expect(s.AddVolume("v", geometry.VolumeSpec{VolType: "Box", Material: "Si", Dimensions: units.Tokens(1, 1, 1)})).To(Succeed())
			Expect(s.AddVolume("v", geometry.VolumeSpec{VolType: "Orb", Material: "Cu", Dimensions: units.Tokens("1m"), Colour: "blue"})).To(Succeed())

			Expect(s.Volumes()).To(HaveLen(1))
			v, ok := s.Volume("v")
			Expect(ok).To(BeTrue())
			Expect(v.Shape).To(Equal(geometry.Orb{R: 1000}))
			Expect(v.Material).To(Equal("G4_Cu"))
			Expect(v.Colour).To(Equal(palette.Blue))
			Expect(rec.CallsTo(recorder.OpVolume)).To(HaveLen(2))
		})

		It("wraps backend rejections with the supplied values and logs them", func() {
			boom := errors.New("rmax must exceed rmin")
			rec.RejectWith(func(op, target string) error {
				if op == recorder.OpVolume && target == "bad" {
					return boom
				}
				return nil
			})
			err := s.AddVolume("bad", geometry.VolumeSpec{
				VolType:    "Tube",
				Material:   "Cu",
				Dimensions: units.Tokens("2m", "1m", "4m"),
				Position:   units.Tokens(0, 0, "5m"),
			})
			Expect(err).To(MatchError(boom))
			var bae *engine.BackendArgumentError
			Expect(errors.As(err, &bae)).To(BeTrue())
			Expect(bae.Signature).To(Equal("Tube(rmin, rmax, dz[, sphi, dphi])"))
			Expect(bae.Material).To(Equal("G4_Cu"))
			Expect(bae.Dimensions).To(Equal([]float64{2000, 1000, 4000, 0, 360}))
			Expect(*bae.Position).To(Equal(geometry.Vector{Z: 5000}))
			Expect(session.IsBackendRejection(err)).To(BeTrue())

			last := hook.LastEntry()
			Expect(last).NotTo(BeNil())
			Expect(last.Level).To(Equal(logrus.ErrorLevel))
			Expect(last.Data).To(HaveKeyWithValue("expects", "Tube(rmin, rmax, dz[, sphi, dphi])"))
			Expect(last.Data).To(HaveKeyWithValue("material", "G4_Cu"))

			_, ok := s.Volume("bad")
			Expect(ok).To(BeFalse())
		})

		It("reports a failed material lookup as a backend rejection", func() {
			busy := errors.New("material table locked")
			rec.RejectWith(func(op, target string) error {
				if op == recorder.OpMaterial && target == "G4_Pb" {
					return busy
				}
				return nil
			})
			err := s.AddVolume("shield", geometry.VolumeSpec{VolType: "Orb", Material: "Pb", Dimensions: units.Tokens("10cm")})
			Expect(err).To(MatchError(busy))
			Expect(session.IsBackendRejection(err)).To(BeTrue())
			var unknown *engine.UnknownMaterialError
			Expect(errors.As(err, &unknown)).To(BeFalse())

			last := hook.LastEntry()
			Expect(last).NotTo(BeNil())
			Expect(last.Level).To(Equal(logrus.ErrorLevel))
			Expect(last.Data).To(HaveKeyWithValue("op", "lookup material"))
			Expect(rec.CallsTo(recorder.OpVolume)).To(BeEmpty())
		})

		It("resizes the world keeping its material", func() {
			Expect(s.ResizeWorld(units.Tokens("1m", "2m", "3m"))).To(Succeed())
			Expect(s.World().Material).To(Equal("G4_AIR"))
			Expect(s.World().Size).To(Equal(geometry.Vector{X: 1000, Y: 2000, Z: 3000}))
			Expect(rec.CallsTo(recorder.OpWorld)).To(HaveLen(1))
		})
	})

	Describe("AddParticleGun", func() {
		var s *session.Session

		BeforeEach(func() {
			var err error
			s, err = session.New(rec, session.Config{}, log)
			Expect(err).NotTo(HaveOccurred())
			rec.Reset()
			hook.Reset()
		})

		It("fails on a spec with neither momentum nor energy", func() {
			err := s.AddParticleGun(gun.Spec{Particle: "proton", Position: units.Tokens(0, 0, 0)})
			var incomplete *gun.IncompleteGunSpecError
			Expect(errors.As(err, &incomplete)).To(BeTrue())
			Expect(rec.Calls()).To(BeEmpty())
		})

		It("prefers momentum over energy and direction, with a warning", func() {
			err := s.AddParticleGun(gun.Spec{
				Particle:  "e-",
				Energy:    energy("100GeV"),
				Direction: units.Tokens(1, 0, 0),
				Momentum:  units.Tokens(0, 0, "100GeV"),
				Position:  units.Tokens(0, 0, "-1m"),
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(ops(rec.Calls())).To(Equal([]string{
				recorder.OpGun, recorder.OpParticle, recorder.OpPosition, recorder.OpMomentum,
			}))
			Expect(rec.CallsTo(recorder.OpPosition)[0].Args).To(Equal([]any{geometry.Vector{Z: -1000}}))
			Expect(rec.CallsTo(recorder.OpMomentum)[0].Args).To(Equal([]any{geometry.Vector{Z: 100000}}))
			Expect(rec.CallsTo(recorder.OpEnergy)).To(BeEmpty())
			Expect(rec.CallsTo(recorder.OpDirection)).To(BeEmpty())

			var warnings []*logrus.Entry
			for _, e := range hook.AllEntries() {
				if e.Level == logrus.WarnLevel {
					warnings = append(warnings, e)
				}
			}
			Expect(warnings).To(HaveLen(1))
			Expect(warnings[0].Data).To(HaveKeyWithValue("ignored", []string{"energy", "direction"}))

			g, ok := s.Gun()
			Expect(ok).To(BeTrue())
			Expect(g.Mode).To(Equal(gun.ModeMomentum))
		})

		It("replaces the previous gun", func() {
			Expect(s.AddParticleGun(gun.Spec{Particle: "e-", Momentum: units.Tokens(0, 0, 1)})).To(Succeed())
			Expect(s.AddParticleGun(gun.Spec{Particle: "mu-", Momentum: units.Tokens(0, 0, 1)})).To(Succeed())
			g, _ := s.Gun()
			Expect(g.Particle).To(Equal("mu-"))
			Expect(rec.CallsTo(recorder.OpGun)).To(HaveLen(2))
		})
	})

	Describe("Run", func() {
		var s *session.Session

		BeforeEach(func() {
			var err error
			s, err = session.New(rec, cfg, log)
			Expect(err).NotTo(HaveOccurred())
			rec.Reset()
		})

		base := []string{
			"/run/verbose 0",
			"/event/verbose 0",
			"/tracking/verbose 0",
			"/run/initialize",
			"/vis/open OGL",
			"/vis/viewer/set/viewpointThetaPhi 80 20",
			"/vis/viewer/set/style wireframe",
			"/vis/drawVolume",
		}

		It("performs a dry run for zero events", func() {
			Expect(s.Run(context.Background(), session.DefaultRunOptions())).To(Succeed())
			Expect(rec.Commands()).To(Equal(base))
			Expect(rec.CallsTo(recorder.OpBeamOn)).To(BeEmpty())
		})

		It("adds overlays after drawing and processes events last", func() {
			opts := session.DefaultRunOptions()
			opts.Events = 25
			opts.Hits = true
			opts.Trajectories = true
			opts.Logo = true
			Expect(s.Run(context.Background(), opts)).To(Succeed())

			want := append(append([]string{}, base...),
				"/vis/scene/add/hits",
				"/vis/scene/add/trajectories smooth",
				"/vis/scene/endOfEventAction accumulate",
				"/vis/scene/add/logo",
			)
			Expect(rec.Commands()).To(Equal(want))
			calls := rec.Calls()
			last := calls[len(calls)-1]
			Expect(last.Op).To(Equal(recorder.OpBeamOn))
			Expect(last.Args).To(Equal([]any{25}))
		})

		It("rejects negative event counts and unknown styles", func() {
			opts := session.DefaultRunOptions()
			opts.Events = -1
			Expect(s.Run(context.Background(), opts)).To(MatchError(session.ErrNegativeEvents))

			opts = session.DefaultRunOptions()
			opts.Style = "cubist"
			Expect(s.Run(context.Background(), opts)).To(HaveOccurred())
			Expect(rec.Calls()).To(BeEmpty())
		})

		It("refuses to run an uninitialized session", func() {
			var zero session.Session
			Expect(zero.Run(context.Background(), session.DefaultRunOptions())).To(MatchError(session.ErrNotReady))
		})

		It("wraps a refused beamOn as a backend rejection and logs it", func() {
			refused := errors.New("engine refused event count")
			rec.RejectWith(func(op, target string) error {
				if op == recorder.OpBeamOn {
					return refused
				}
				return nil
			})
			opts := session.DefaultRunOptions()
			opts.Events = 5
			err := s.Run(context.Background(), opts)
			Expect(err).To(MatchError(refused))
			Expect(session.IsBackendRejection(err)).To(BeTrue())
			var bae *engine.BackendArgumentError
			Expect(errors.As(err, &bae)).To(BeTrue())
			Expect(bae.Op).To(Equal("beamOn"))
			Expect(bae.Target).To(Equal("5"))

			last := hook.LastEntry()
			Expect(last).NotTo(BeNil())
			Expect(last.Level).To(Equal(logrus.ErrorLevel))
		})

		It("propagates cancellation from event processing", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			opts := session.DefaultRunOptions()
			opts.Events = 1
			err := s.Run(ctx, opts)
			Expect(err).To(MatchError(context.Canceled))
			Expect(session.IsBackendRejection(err)).To(BeFalse())
		})
	})
})
