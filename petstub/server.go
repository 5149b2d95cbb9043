// Package petstub serves the battle pets lookup endpoints from an in-memory
// fixture. It stands in for the real service during development and tests.
package petstub

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"

	"battlepets/petlookup"
)

// Pet is one fixture entry, serialised as the service would
type Pet struct {
	ID         int64  `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Type       string `json:"type" yaml:"type"`
	Level      int    `json:"level,omitempty" yaml:"level"`
	Health     int    `json:"health,omitempty" yaml:"health"`
	Power      int    `json:"power,omitempty" yaml:"power"`
	Speed      int    `json:"speed,omitempty" yaml:"speed"`
	Breed      string `json:"breed,omitempty" yaml:"breed"`
	Source     string `json:"source,omitempty" yaml:"source"`
	Popularity int    `json:"popularity,omitempty" yaml:"popularity"`
}

// Fixture is the YAML document layout
type Fixture struct {
	Pets []Pet `yaml:"pets"`
}

// DefaultFixture is served when no fixture file is given
func DefaultFixture() Fixture {
	return Fixture{Pets: []Pet{
		{ID: 42, Name: "Mini Tyrael", Type: "Humanoid", Level: 25, Health: 1546, Power: 276, Speed: 276, Breed: "S/S", Source: "Promotion"},
		{ID: 68664, Name: "Tiny Shale Spider", Type: "Elemental", Level: 25, Health: 1725, Power: 289, Speed: 228, Breed: "P/P", Source: "Pet Battle: Deepholm"},
		{ID: 61071, Name: "Emerald Proto-Whelp", Type: "Dragonkin", Level: 25, Health: 1627, Power: 276, Speed: 260, Breed: "S/S", Source: "Pet Battle: Sholazar Basin"},
		{ID: 68819, Name: "Arcane Eye", Type: "Magic", Level: 25, Health: 1400, Power: 289, Speed: 289, Breed: "P/S", Source: "Pet Battle: Deadwind Pass"},
		{ID: 54027, Name: "Lil' Tarecgosa", Type: "Dragonkin", Level: 25, Health: 1546, Power: 289, Speed: 260, Breed: "P/S", Source: "Achievement"},
		{ID: 62829, Name: "Mechanical Squirrel", Type: "Mechanical", Level: 25, Health: 1546, Power: 260, Speed: 260, Breed: "B/B", Source: "Profession: Engineering"},
		{ID: 61317, Name: "Anubisath Idol", Type: "Humanoid", Level: 25, Health: 1725, Power: 305, Speed: 195, Breed: "H/P", Source: "Drop"},
	}}
}

// LoadFixture reads a YAML fixture from disk
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("failed to read fixture: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("failed to parse fixture: %w", err)
	}
	for i, p := range f.Pets {
		if _, err := petlookup.ParsePetType(p.Type); err != nil {
			return Fixture{}, fmt.Errorf("fixture pet %d (%s): %w", i, p.Name, err)
		}
	}
	return f, nil
}

// Server answers lookups from a fixture
type Server struct {
	byID   map[int64]Pet
	byType map[petlookup.PetType][]Pet
	log    *slog.Logger
}

// NewServer indexes the fixture
func NewServer(f Fixture, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		byID:   make(map[int64]Pet, len(f.Pets)),
		byType: make(map[petlookup.PetType][]Pet),
		log:    log,
	}
	for _, p := range f.Pets {
		pt, err := petlookup.ParsePetType(p.Type)
		if err != nil {
			log.Warn("skipping fixture pet", "id", p.ID, "err", err)
			continue
		}
		p.Type = string(pt)
		s.byID[p.ID] = p
		s.byType[pt] = append(s.byType[pt], p)
	}
	for pt := range s.byType {
		pets := s.byType[pt]
		sort.Slice(pets, func(i, j int) bool { return pets[i].ID < pets[j].ID })
	}
	return s
}

// Handler builds the gin engine
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())

	group := r.Group("/battle_pets")
	group.GET("/get_by_id", s.getByID)
	group.GET("/list_double_counters", s.listDoubleCounters)

	return r
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", c.Writer.Status())
	}
}

func (s *Server) getByID(c *gin.Context) {
	raw := c.Query("_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("invalid _id %q", raw)})
		return
	}
	pet, ok := s.byID[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": fmt.Sprintf("battle pet %d not found", id)})
		return
	}
	c.JSON(http.StatusOK, pet)
}

func (s *Server) listDoubleCounters(c *gin.Context) {
	raw := c.Query("_type")
	target := petlookup.PetType(raw)
	if !target.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("invalid _type %q", raw)})
		return
	}

	counters := make([]Pet, 0)
	for _, pt := range petlookup.CounterTypes(target) {
		counters = append(counters, s.byType[pt]...)
	}
	sort.SliceStable(counters, func(i, j int) bool { return counters[i].ID < counters[j].ID })

	c.JSON(http.StatusOK, counters)
}
