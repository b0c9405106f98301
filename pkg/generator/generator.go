package generator

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/schollz/progressbar/v3"

	"mece-segments/pkg/models"
)

// DefaultSeed reproduit les mêmes jeux de données d'un run à l'autre.
const DefaultSeed = 42

// Generate produit une population synthétique réaliste d'abandons de panier,
// de façon déterministe pour une graine donnée. Les corrélations métier sont
// respectées : un AOV élevé tire l'engagement et la profitabilité vers le haut.
// C'est la seule source d'aléa du système : le moteur lui-même est pur.
func Generate(n int, seed int64, showProgress bool) []models.User {
	rng := rand.New(rand.NewSource(seed))

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.Default(int64(n))
	}

	population := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		// AOV log-normal (mu=6.5, sigma=1.2), borné [10, 10000].
		aov := clamp(math.Exp(6.5+1.2*rng.NormFloat64()), 10, 10000)

		// Engagement corrélé à log(AOV), bruité, ramené sur [0, 100].
		eng01 := clamp((math.Log(aov)-3)/5+rng.NormFloat64()*0.3, 0, 1)

		// Profitabilité corrélée à l'engagement et à l'AOV.
		prof01 := clamp(eng01*0.6+math.Log(aov)/10+rng.NormFloat64()*0.2, 0, 1)

		// Décroissance exponentielle de la récence de commande (moyenne 30 jours).
		days := int(rng.ExpFloat64() * 30)

		population = append(population, models.User{
			UserID:             fmt.Sprintf("user_%05d", i),
			AvgOrderValue:      math.Round(aov*100) / 100,
			EngagementScore:    math.Round(eng01*100*1000) / 1000,
			ProfitabilityScore: math.Round(prof01*100*1000) / 1000,
			DaysSinceLastOrder: days,
			// Abandon sur 0..9 jours : une partie de la population sort de l'univers (<= 7).
			CartAbandonDaysAgo: rng.Intn(10),
		})
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	return population
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
