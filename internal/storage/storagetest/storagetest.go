// Package storagetest holds a conformance suite every storage backend must
// pass. Backends run it from their own tests against a live store.
package storagetest

import (
	"context"
	"testing"

	"ordersnf/internal/ddl"
	"ordersnf/internal/schema"
	"ordersnf/internal/storage"
)

// Run recreates the store schema through the DDL bootstrapper registered for
// kind and exercises every Repository method against it.
func Run(t *testing.T, kind string, repo storage.Repository) {
	t.Helper()
	ctx := context.Background()

	mustReset(t, ctx, kind, repo)

	// Natural-key inserts are idempotent.
	clientCols := schema.Clients.InsertColumns()
	client := schema.Client{Name: "Иванов Иван", Email: "ivan@example.com", Phone: "+7 900 000-00-00"}
	for i, want := range []bool{true, false} {
		got, err := repo.InsertIgnore(ctx, schema.ClientsTable, clientCols, client.Values())
		if err != nil {
			t.Fatalf("InsertIgnore(clients) #%d: %v", i, err)
		}
		if got != want {
			t.Fatalf("InsertIgnore(clients) #%d = %v, want %v", i, got, want)
		}
	}
	clientID := mustLookup(t, ctx, repo, schema.Clients, clientCols, client.Values())

	seller := schema.Seller{Name: "Петров", Position: "менеджер"}
	if _, err := repo.InsertIgnore(ctx, schema.SellersTable, schema.Sellers.InsertColumns(), seller.Values()); err != nil {
		t.Fatalf("InsertIgnore(sellers): %v", err)
	}
	sellerID := mustLookup(t, ctx, repo, schema.Sellers, schema.Sellers.InsertColumns(), seller.Values())

	capacity := int64(1000)
	wh := schema.Warehouse{Name: "Северный", Address: "ул. Ленина, 1", Capacity: &capacity}
	if _, err := repo.InsertIgnore(ctx, schema.WarehousesTable, schema.Warehouses.InsertColumns(), wh.Values()); err != nil {
		t.Fatalf("InsertIgnore(warehouses): %v", err)
	}
	whID := mustLookup(t, ctx, repo, schema.Warehouses, []string{"warehouse_name", "warehouse_address"}, wh.Key())

	model := schema.Model{Name: "air max", Category: "кроссовки", Brand: "nike", Size: "42", Color: "red"}
	modelID, err := repo.InsertReturningID(ctx, schema.ModelsTable, "model_id", schema.Models.InsertColumns(), model.Values())
	if err != nil {
		t.Fatalf("InsertReturningID(models): %v", err)
	}
	if got := mustLookup(t, ctx, repo, schema.Models, schema.Models.InsertColumns(), model.Values()); got != modelID {
		t.Fatalf("LookupID(models) = %d, want %d from InsertReturningID", got, modelID)
	}

	_, found, err := repo.LookupID(ctx, schema.ClientsTable, "client_id", clientCols, []any{"nobody", "", ""})
	if err != nil || found {
		t.Fatalf("LookupID(missing client) found = %v, err = %v; want false, nil", found, err)
	}

	price := 4999.5
	qty := int64(2)
	order := schema.Order{
		ID: 1001, Date: "2024-01-15", ClientID: clientID, ModelID: modelID,
		Price: &price, Quantity: &qty, SellerID: sellerID, WarehouseID: whID,
	}
	for i, want := range []bool{true, false} {
		got, err := repo.InsertIgnore(ctx, schema.OrdersTable, schema.Orders.InsertColumns(), order.Values())
		if err != nil {
			t.Fatalf("InsertIgnore(orders) #%d: %v", i, err)
		}
		if got != want {
			t.Fatalf("InsertIgnore(orders) #%d = %v, want %v", i, got, want)
		}
	}

	rows, err := repo.Select(ctx, schema.OrdersTable, schema.Orders.ColumnNames(), "order_id")
	if err != nil {
		t.Fatalf("Select(orders): %v", err)
	}
	if len(rows) != 1 || len(rows[0]) != len(schema.Orders.Columns) {
		t.Fatalf("Select(orders) = %v, want one row of %d columns", rows, len(schema.Orders.Columns))
	}

	// Recreating leaves every table empty.
	mustReset(t, ctx, kind, repo)
	for _, tbl := range schema.Tables() {
		n, err := repo.Count(ctx, tbl.Name)
		if err != nil {
			t.Fatalf("Count(%s): %v", tbl.Name, err)
		}
		if n != 0 {
			t.Fatalf("Count(%s) after reset = %d, want 0", tbl.Name, n)
		}
	}
}

func mustReset(t *testing.T, ctx context.Context, kind string, repo storage.Repository) {
	t.Helper()
	if err := storage.ResetSchema(ctx, kind, repo, schema.Tables()); err != nil {
		t.Fatalf("ResetSchema(%s): %v", kind, err)
	}
}

func mustLookup(t *testing.T, ctx context.Context, repo storage.Repository, def ddl.TableDef, cols []string, vals []any) int64 {
	t.Helper()
	id, found, err := repo.LookupID(ctx, def.Name, def.PrimaryKey(), cols, vals)
	if err != nil {
		t.Fatalf("LookupID(%s): %v", def.Name, err)
	}
	if !found {
		t.Fatalf("LookupID(%s) found = false, want true", def.Name)
	}
	return id
}
