package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	translatable "github.com/goliatone/go-translatable"
	"github.com/goliatone/go-translatable/translation"
	_ "github.com/mattn/go-sqlite3"
)

type post struct {
	ID    int64
	Title string
	Body  string
}

func (p *post) TranslationOwner() translation.Owner {
	return translation.Owner{Type: "post", ID: p.ID}
}

func (p *post) TranslatableFields() []translation.Field {
	return []translation.Field{
		{Name: "title"},
		{Name: "body"},
	}
}

func (p *post) BaseValue(field string) any {
	switch field {
	case "title":
		return p.Title
	case "body":
		return p.Body
	default:
		return nil
	}
}

func main() {
	ctx := context.Background()

	sqlDB, err := sql.Open("sqlite3", "file:translatable_example?mode=memory&cache=shared&_fk=1")
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	defer sqlDB.Close()

	db := translatable.NewSQLiteDB(sqlDB)
	db.SetMaxOpenConns(1)

	if _, err := db.NewCreateTable().
		Model((*translatable.Translation)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		log.Fatalf("create translations table: %v", err)
	}

	cfg := translatable.DefaultConfig()
	cfg.DefaultLocale = "en"
	cfg.Logging.Enabled = true
	cfg.Logging.Level = "info"

	module, err := translatable.New(cfg, translatable.WithDB(db))
	if err != nil {
		log.Fatalf("initialise translatable: %v", err)
	}

	record := &post{ID: 1, Title: "Original Title", Body: "Original body"}
	resolver, err := module.Resolver(record)
	if err != nil {
		log.Fatalf("build resolver: %v", err)
	}

	if err := resolver.Set(ctx, "title", "es", "Título en Español"); err != nil {
		log.Fatalf("store spanish title: %v", err)
	}

	for _, locale := range []string{"en", "es", "fr"} {
		value, err := resolver.Get(ctx, "title", locale)
		if err != nil {
			log.Fatalf("resolve title (%s): %v", locale, err)
		}
		fmt.Printf("title[%s] = %v\n", locale, value)
	}

	// Requests usually carry the locale on the context instead of passing it
	// per call.
	esCtx := translation.ContextWithLocale(ctx, "es")
	value, err := resolver.Get(esCtx, "title")
	if err != nil {
		log.Fatalf("resolve ambient title: %v", err)
	}
	fmt.Printf("ambient title = %v\n", value)

	// Saving under a non-default locale routes every declared field to the
	// translation store instead of the base record.
	record.Title = "Título actualizado"
	record.Body = "Cuerpo actualizado"
	routed, err := resolver.SyncOnSave(esCtx)
	if err != nil {
		log.Fatalf("sync on save: %v", err)
	}
	fmt.Printf("save routed to translations: %v\n", routed)

	values, err := resolver.ResolveAll(esCtx)
	if err != nil {
		log.Fatalf("resolve all: %v", err)
	}
	for field, value := range values {
		fmt.Printf("resolved[%s] = %v\n", field, value)
	}

	if err := resolver.Purge(ctx); err != nil {
		log.Fatalf("purge: %v", err)
	}
	fmt.Println("translations purged")
}
