package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"mece-segments/pkg/models"

	_ "github.com/go-sql-driver/mysql"
)

// Open DSN mariadb:// ou mysql:// → format MySQL driver
func Open(dsn string) (*sql.DB, string, error) {
	mysqlDSN, err := toMySQLDSN(dsn)
	if err != nil {
		return nil, "", err
	}
	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		return nil, "", err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, mysqlDSN, nil
}

func toMySQLDSN(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "mariadb://") || strings.HasPrefix(dsn, "mysql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		user := ""
		pass := ""
		if u.User != nil {
			user = u.User.Username()
			pw, _ := u.User.Password()
			pass = pw
		}
		host := u.Host
		db := strings.TrimPrefix(u.Path, "/")
		if user == "" || host == "" || db == "" {
			return "", fmt.Errorf("dsn incomplet (user/host/db)")
		}
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&interpolateParams=true",
			user, pass, host, db), nil
	}
	return dsn, nil
}

// LoadPopulation charge la table de population : une ligne par utilisateur,
// les six champs attendus par le moteur. Les lignes invalides (AOV <= 0,
// jours négatifs) sont ignorées avec un log, jamais corrigées en silence.
func LoadPopulation(ctx context.Context, db *sql.DB, tableName string) ([]models.User, error) {
	if !regexp.MustCompile(`^[A-Za-z0-9_]+$`).MatchString(tableName) {
		return nil, fmt.Errorf("table invalide")
	}

	q := fmt.Sprintf(`
		SELECT
			user_id,
			avg_order_value,
			engagement_score,
			profitability_score,
			COALESCE(days_since_last_order, 0),
			cart_abandon_days_ago
		FROM %s
	`, tableName)

	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var population []models.User
	skipped := 0
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.UserID, &u.AvgOrderValue, &u.EngagementScore,
			&u.ProfitabilityScore, &u.DaysSinceLastOrder, &u.CartAbandonDaysAgo); err != nil {
			return nil, err
		}
		if u.AvgOrderValue <= 0 || u.DaysSinceLastOrder < 0 || u.CartAbandonDaysAgo < 0 {
			skipped++
			log.Printf("[DEBUG] ligne ignorée user=%s aov=%.2f jours=%d abandon=%d",
				u.UserID, u.AvgOrderValue, u.DaysSinceLastOrder, u.CartAbandonDaysAgo)
			continue
		}
		population = append(population, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Printf("[DEBUG] population chargée=%d, lignes ignorées=%d", len(population), skipped)
	return population, nil
}
