package mockserver

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"time"
)

// SeedOptions controls the demo data created by Seed.
type SeedOptions struct {
	AdminUsername string
	AdminPassword string
	Users         int
	Teams         int
}

// DefaultSeed is what `musheet-admin mock-server --seed` creates.
var DefaultSeed = SeedOptions{
	AdminUsername: "admin",
	AdminPassword: "admin123",
	Users:         45,
	Teams:         6,
}

var demoNames = []string{
	"Clara", "Johannes", "Fanny", "Felix", "Ludwig", "Amy", "Franz", "Hildegard",
	"Sergei", "Nadia", "Igor", "Lili", "Maurice", "Cécile", "Dmitri", "Florence",
}

var demoTeams = []string{
	"Symphony Orchestra", "Chamber Choir", "Brass Ensemble", "Jazz Combo",
	"String Quartet", "Wind Band", "Youth Strings", "Percussion Group",
}

// Seed fills the server with an admin account plus demo users and teams.
// Every third user gets a generated avatar and every seventh is disabled.
func (s *Server) Seed(opts SeedOptions) error {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	admin, err := st.addUser(opts.AdminUsername, opts.AdminPassword, "Administrator", true)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	admin.LastSeen = st.now()

	users := make([]*user, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		name := demoNames[i%len(demoNames)]
		u, err := st.addUser(fmt.Sprintf("%s%d", lower(name), i+1), "password", name, false)
		if err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}
		u.CreatedAt = st.now().Add(-time.Duration(opts.Users-i) * 24 * time.Hour).UTC()
		if i%2 == 0 {
			u.LastSeen = st.now().Add(-time.Duration(i%10) * 24 * time.Hour)
		}
		if i%3 == 0 {
			u.Avatar = placeholderPNG(i)
		}
		u.IsDisabled = i%7 == 6
		users = append(users, u)
	}

	for i := 0; i < opts.Teams; i++ {
		t, err := st.addTeam(demoTeams[i%len(demoTeams)], fmt.Sprintf("Demo team #%d", i+1))
		if err != nil {
			return fmt.Errorf("seed team %d: %w", i, err)
		}
		t.SharedScores = (i + 1) * 4
		for j, u := range users {
			if j%opts.Teams == i || j%(i+2) == 0 {
				t.Members[u.ID] = u.CreatedAt.Add(time.Hour)
			}
		}
	}
	st.scores = opts.Users * 3
	return nil
}

func lower(s string) string {
	b := []byte(s)
	if len(b) > 0 && b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}

// placeholderPNG draws a 16x16 two-tone square whose hue depends on n.
func placeholderPNG(n int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	fg := color.RGBA{R: uint8(60 + n*37%190), G: uint8(90 + n*53%160), B: uint8(120 + n*71%130), A: 255}
	bg := color.RGBA{R: 0x20, G: 0x20, B: 0x2a, A: 255}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if (x/4+y/4)%2 == 0 {
				img.Set(x, y, fg)
			} else {
				img.Set(x, y, bg)
			}
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
