// Package platforms contains the simulated listing-marketplace adapters.
// No real network call is made: each adapter sleeps for a randomized
// latency window and then draws against a per-platform success rate.
package platforms

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"imobcrm/internal/domain"
	"imobcrm/internal/ports"
)

// Rand is the randomness source behind a simulated platform. Injecting it
// lets tests force deterministic outcomes without timing dependence.
type Rand interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Suffix returns n random lowercase base36 characters.
	Suffix(n int) string
}

// SystemRand implements Rand on math/rand.
type SystemRand struct{}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func (SystemRand) Float64() float64 { return rand.Float64() }

func (SystemRand) Suffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36[rand.Intn(len(base36))]
	}
	return string(b)
}

// Config carries the simulation knobs shared by all three platforms.
// The zero value of Rand and Sleep fall back to real randomness and a
// real sleep.
type Config struct {
	SuccessRate float64
	LatencyMin  time.Duration
	LatencyMax  time.Duration
	Rand        Rand
	Sleep       func(time.Duration)
}

func (c Config) withDefaults() Config {
	if c.Rand == nil {
		c.Rand = SystemRand{}
	}
	if c.Sleep == nil {
		c.Sleep = time.Sleep
	}
	if c.LatencyMax < c.LatencyMin {
		c.LatencyMax = c.LatencyMin
	}
	return c
}

// simulator is the common submission behavior; the per-platform adapters
// differ only in naming, messages and URL template.
type simulator struct {
	platform   domain.Platform
	adPrefix   string
	urlFormat  string
	successMsg string
	failureMsg string
	cfg        Config
}

func (s *simulator) Name() domain.Platform { return s.platform }

func (s *simulator) Submit(ctx context.Context, _ *domain.Property, _ domain.PublishingOptions) (domain.PublishingResult, error) {
	s.cfg.Sleep(s.latency())

	if s.cfg.Rand.Float64() >= s.cfg.SuccessRate {
		return domain.PublishingResult{
			Platform: s.platform,
			Success:  false,
			Message:  s.failureMsg,
		}, nil
	}

	adID := fmt.Sprintf("%s_%d_%s", s.adPrefix, time.Now().UnixMilli(), s.cfg.Rand.Suffix(9))
	return domain.PublishingResult{
		Platform: s.platform,
		Success:  true,
		Message:  s.successMsg,
		AdID:     adID,
		AdURL:    fmt.Sprintf(s.urlFormat, adID),
	}, nil
}

func (s *simulator) latency() time.Duration {
	window := s.cfg.LatencyMax - s.cfg.LatencyMin
	if window <= 0 {
		return s.cfg.LatencyMin
	}
	return s.cfg.LatencyMin + time.Duration(s.cfg.Rand.Float64()*float64(window))
}

// NewOLX builds the OLX adapter.
func NewOLX(cfg Config) ports.ListingPlatform {
	return &simulator{
		platform:   domain.PlatformOLX,
		adPrefix:   "olx",
		urlFormat:  "https://olx.com.br/anuncio/%s",
		successMsg: "Anúncio publicado com sucesso no OLX",
		failureMsg: "Erro na publicação: Limite de anúncios atingido",
		cfg:        cfg.withDefaults(),
	}
}

// NewZapImoveis builds the ZapImóveis adapter.
func NewZapImoveis(cfg Config) ports.ListingPlatform {
	return &simulator{
		platform:   domain.PlatformZapImoveis,
		adPrefix:   "zap",
		urlFormat:  "https://zapimoveis.com.br/imovel/%s",
		successMsg: "Anúncio publicado com sucesso no ZapImóveis",
		failureMsg: "Erro na publicação: Dados do imóvel incompletos",
		cfg:        cfg.withDefaults(),
	}
}

// NewVivaReal builds the VivaReal adapter.
func NewVivaReal(cfg Config) ports.ListingPlatform {
	return &simulator{
		platform:   domain.PlatformVivaReal,
		adPrefix:   "vr",
		urlFormat:  "https://vivareal.com.br/imovel/%s",
		successMsg: "Anúncio publicado com sucesso no VivaReal",
		failureMsg: "Erro na publicação: Falha na autenticação",
		cfg:        cfg.withDefaults(),
	}
}
