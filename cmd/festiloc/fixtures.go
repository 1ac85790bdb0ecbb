package main

import (
	"context"
	"log/slog"
	"time"

	domainarticle "festiloc/internal/domain/article"
	domainclient "festiloc/internal/domain/client"
	"festiloc/internal/domain/shared/money"
	"festiloc/internal/infra/storage/memory"
)

// seedDemoData fills the in-memory stores so the API is usable out of the
// box. Mongo deployments manage their own catalog.
func seedDemoData(articles *memory.ArticleRepository, clients *memory.ClientRepository, logger *slog.Logger) {
	ctx := context.Background()
	now := time.Now().UTC()

	demoArticles := []*domainarticle.Article{
		{ID: "art-chaise-napoleon", Name: "Chaise Napoléon", CategoryID: "cat-chaises", QuantityTotal: 200, PricePerDay: money.DZD(150), Active: true, CreatedAt: now},
		{ID: "art-table-ronde", Name: "Table ronde 10 places", CategoryID: "cat-tables", QuantityTotal: 40, PricePerDay: money.DZD(800), Active: true, CreatedAt: now},
		{ID: "art-nappe-blanche", Name: "Nappe blanche", CategoryID: "cat-linge", QuantityTotal: 120, PricePerDay: money.DZD(100), Active: true, CreatedAt: now},
		{ID: "art-lustre-cristal", Name: "Lustre cristal", CategoryID: "cat-eclairage", QuantityTotal: 12, PricePerDay: money.DZD(2500), Active: true, CreatedAt: now},
	}
	for _, a := range demoArticles {
		if err := articles.Save(ctx, a); err != nil {
			logger.Warn("demo article seed failed", "article", a.ID, "error", err)
		}
	}

	demoClients := []*domainclient.Client{
		{ID: "cli-benali", Name: "Karim Benali", Phone: "+213 555 01 02 03", EventType: "Mariage", Active: true, CreatedAt: now},
		{ID: "cli-sarl-fetes", Name: "SARL Fêtes & Réceptions", Phone: "+213 555 04 05 06", CompanyName: "SARL Fêtes & Réceptions", EventType: "Entreprise", Active: true, CreatedAt: now},
	}
	for _, c := range demoClients {
		if err := clients.Save(ctx, c); err != nil {
			logger.Warn("demo client seed failed", "client", c.ID, "error", err)
		}
	}
}
