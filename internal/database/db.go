package database

import (
    "context"
    "database/sql"
    "fmt"
    "log"
    "time"

    _ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection. Startup
// retries a few times so the server survives the database coming
// up slightly later (docker-compose ordering).
func Open(user, pass, host, port, name string) (*sql.DB, error) {
    auth := user
    if pass != "" {
        auth = fmt.Sprintf("%s:%s", user, pass)
    }
    // parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
    dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
        auth, host, port, name)

    db, err := sql.Open("mysql", dsn)
    if err != nil {
        return nil, err
    }

    // Pool settings
    db.SetMaxOpenConns(25)
    db.SetMaxIdleConns(25)
    db.SetConnMaxLifetime(30 * time.Minute)

    var pingErr error
    for attempt := 1; attempt <= 5; attempt++ {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        pingErr = db.PingContext(ctx)
        cancel()
        if pingErr == nil {
            return db, nil
        }
        log.Printf("database: ping attempt %d failed: %v", attempt, pingErr)
        time.Sleep(time.Duration(attempt) * time.Second)
    }
    return nil, pingErr
}
