// Package importer loads the cleaned order records into the normalized
// store. Clients, sellers and warehouses are inserted once per distinct
// natural key up front; models are resolved per record from their canonical
// fields; every order is inserted only when all four references resolve.
package importer

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/zeebo/xxh3"

	"ordersnf/internal/ddl"
	"ordersnf/internal/metrics"
	"ordersnf/internal/records"
	"ordersnf/internal/schema"
	"ordersnf/internal/skiplog"
	"ordersnf/internal/storage"
	"ordersnf/internal/transformer/builtin"
)

// Options configures an Importer.
type Options struct {
	// Job labels metrics.
	Job string
	// Verbose logs every model the importer creates.
	Verbose bool
	// Skips receives one row per skipped order. Nil disables the skip file.
	Skips *skiplog.Log
}

// EntityCounts reports rows newly written per entity table.
type EntityCounts struct {
	Clients    int
	Sellers    int
	Warehouses int
}

// Summary is the outcome of one import run.
type Summary struct {
	EntityCounts

	Processed     int // records examined by LoadOrders
	Inserted      int // orders written
	Existing      int // orders whose id was already in the store
	Skipped       int // orders rejected for a missing reference or a bad id
	ModelsCreated int
	SkipReasons   map[string]int
}

// Importer writes records through a storage.Repository it does not own.
type Importer struct {
	repo storage.Repository
	opt  Options
}

// New returns an Importer writing to repo.
func New(repo storage.Repository, opt Options) *Importer {
	return &Importer{repo: repo, opt: opt}
}

// Run upserts the entity tables and then loads the orders, recording a metrics
// step for each phase. Any store error aborts the run.
func (im *Importer) Run(ctx context.Context, t *records.Table) (Summary, error) {
	var sum Summary

	start := time.Now()
	ec, err := im.UpsertEntities(ctx, t)
	metrics.RecordStep(im.opt.Job, "entities", err, time.Since(start))
	if err != nil {
		return sum, err
	}

	start = time.Now()
	sum, err = im.LoadOrders(ctx, t)
	metrics.RecordStep(im.opt.Job, "orders", err, time.Since(start))
	sum.EntityCounts = ec
	if err != nil {
		return sum, err
	}

	log.Printf("importer: clients=%d sellers=%d warehouses=%d models_created=%d processed=%d inserted=%d existing=%d skipped=%d",
		ec.Clients, ec.Sellers, ec.Warehouses, sum.ModelsCreated, sum.Processed, sum.Inserted, sum.Existing, sum.Skipped)
	return sum, nil
}

// UpsertEntities inserts every distinct client, seller and warehouse of t.
// Existing rows are left untouched. For warehouses the first row of each
// (name, address) supplies capacity and shelves.
func (im *Importer) UpsertEntities(ctx context.Context, t *records.Table) (EntityCounts, error) {
	var ec EntityCounts
	var err error

	if ec.Clients, err = im.upsertDistinct(ctx, t, schema.Clients, clientKey, func(r records.Record) []any {
		return clientOf(r).Values()
	}); err != nil {
		return ec, err
	}
	if ec.Sellers, err = im.upsertDistinct(ctx, t, schema.Sellers, sellerKey, func(r records.Record) []any {
		return sellerOf(r).Values()
	}); err != nil {
		return ec, err
	}
	if ec.Warehouses, err = im.upsertDistinct(ctx, t, schema.Warehouses, warehouseKey, func(r records.Record) []any {
		return im.warehouseOf(r).Values()
	}); err != nil {
		return ec, err
	}
	return ec, nil
}

var (
	clientKey    = []string{"client_name", "client_email", "client_phone"}
	sellerKey    = []string{"seller_name", "seller_position"}
	warehouseKey = []string{"warehouse_name", "warehouse_address"}
)

func (im *Importer) upsertDistinct(ctx context.Context, t *records.Table, def ddl.TableDef, key []string, values func(records.Record) []any) (int, error) {
	cols := def.InsertColumns()
	seen := make(map[xxh3.Uint128]struct{}, len(t.Rows))
	inserted := 0
	for _, r := range t.Rows {
		k := tupleHash(r, key)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}

		ok, err := im.repo.InsertIgnore(ctx, def.Name, cols, values(r))
		if err != nil {
			return inserted, fmt.Errorf("importer: upsert %s: %w", def.Name, err)
		}
		if ok {
			inserted++
		}
	}
	metrics.RecordEntities(im.opt.Job, def.Name, int64(inserted))
	log.Printf("importer: %s distinct=%d inserted=%d", def.Name, len(seen), inserted)
	return inserted, nil
}

// LoadOrders resolves the references of every record in source order and
// inserts its order. A record whose client, seller or warehouse is absent
// from the store, or whose order id is not an integer, is skipped and
// reported; the run continues.
func (im *Importer) LoadOrders(ctx context.Context, t *records.Table) (Summary, error) {
	sum := Summary{}
	cols := schema.Orders.InsertColumns()

	for _, r := range t.Rows {
		sum.Processed++
		rawID := strings.TrimSpace(r.Get("order_id"))

		orderID, ok := builtin.ParseInt(rawID)
		if !ok {
			if err := im.skip(&sum, r, rawID, skiplog.ReasonBadOrderID, fmt.Sprintf("order_id %q is not an integer", rawID)); err != nil {
				return sum, err
			}
			continue
		}

		modelID, created, err := im.resolveModel(ctx, r)
		if err != nil {
			return sum, err
		}
		if created {
			sum.ModelsCreated++
		}

		clientID, found, err := im.lookup(ctx, schema.Clients, clientKey, clientOf(r).Values())
		if err != nil {
			return sum, err
		}
		if !found {
			if err := im.skip(&sum, r, rawID, skiplog.ReasonClientNotFound, describe(r, clientKey)); err != nil {
				return sum, err
			}
			continue
		}

		sellerID, found, err := im.lookup(ctx, schema.Sellers, sellerKey, sellerOf(r).Values())
		if err != nil {
			return sum, err
		}
		if !found {
			if err := im.skip(&sum, r, rawID, skiplog.ReasonSellerNotFound, describe(r, sellerKey)); err != nil {
				return sum, err
			}
			continue
		}

		warehouseID, found, err := im.lookup(ctx, schema.Warehouses, warehouseKey, warehouseRef(r).Key())
		if err != nil {
			return sum, err
		}
		if !found {
			if err := im.skip(&sum, r, rawID, skiplog.ReasonWarehouseNotFound, describe(r, warehouseKey)); err != nil {
				return sum, err
			}
			continue
		}

		o := schema.Order{
			ID:          orderID,
			Date:        r.Get("order_date"),
			ClientID:    clientID,
			ModelID:     modelID,
			SellerID:    sellerID,
			WarehouseID: warehouseID,
		}
		if p, ok := builtin.ParseFloat(r.Get("price")); ok {
			o.Price = &p
		}
		if q, ok := builtin.ParseInt(r.Get("quantity")); ok {
			o.Quantity = &q
		}

		ok, err = im.repo.InsertIgnore(ctx, schema.OrdersTable, cols, o.Values())
		if err != nil {
			return sum, fmt.Errorf("importer: insert order %d: %w", orderID, err)
		}
		if ok {
			sum.Inserted++
		} else {
			sum.Existing++
		}
	}

	if im.opt.Skips != nil {
		sum.SkipReasons = im.opt.Skips.Counts()
	}

	job := im.opt.Job
	metrics.RecordRow(job, metrics.KindProcessed, int64(sum.Processed))
	metrics.RecordRow(job, metrics.KindInserted, int64(sum.Inserted))
	metrics.RecordRow(job, metrics.KindExisting, int64(sum.Existing))
	metrics.RecordRow(job, metrics.KindSkipped, int64(sum.Skipped))
	metrics.RecordRow(job, metrics.KindModelsCreated, int64(sum.ModelsCreated))
	metrics.RecordEntities(job, schema.OrdersTable, int64(sum.Inserted))
	metrics.RecordEntities(job, schema.ModelsTable, int64(sum.ModelsCreated))
	return sum, nil
}

// resolveModel returns the id of the model with r's canonical fields,
// inserting it when absent.
func (im *Importer) resolveModel(ctx context.Context, r records.Record) (int64, bool, error) {
	m := ModelOf(r)
	id, found, err := im.lookup(ctx, schema.Models, builtin.ModelFields, m.Values())
	if err != nil || found {
		return id, false, err
	}
	id, err = im.repo.InsertReturningID(ctx, schema.ModelsTable, schema.Models.PrimaryKey(), schema.Models.InsertColumns(), m.Values())
	if err != nil {
		return 0, false, fmt.Errorf("importer: insert model: %w", err)
	}
	if im.opt.Verbose {
		log.Printf("importer: model created id=%d name=%q category=%q brand=%q size=%q color=%q",
			id, m.Name, m.Category, m.Brand, m.Size, m.Color)
	}
	return id, true, nil
}

func (im *Importer) lookup(ctx context.Context, def ddl.TableDef, keyCols []string, vals []any) (int64, bool, error) {
	id, found, err := im.repo.LookupID(ctx, def.Name, def.PrimaryKey(), keyCols, vals)
	if err != nil {
		return 0, false, fmt.Errorf("importer: lookup %s: %w", def.Name, err)
	}
	return id, found, nil
}

func (im *Importer) skip(sum *Summary, r records.Record, orderID, reason, detail string) error {
	sum.Skipped++
	log.Printf("importer: skip order_id=%s row=%d reason=%s %s", orderID, r.Line, reason, detail)
	return im.opt.Skips.Add(reason, r.Line, orderID, detail)
}

// ModelOf builds the model of r from its canonical fields. The store holds
// models only in this form.
func ModelOf(r records.Record) schema.Model {
	return schema.Model{
		Name:     builtin.Canonical(r.Get("model_name")),
		Category: builtin.Canonical(r.Get("category")),
		Brand:    builtin.Canonical(r.Get("brand")),
		Size:     builtin.Canonical(r.Get("size")),
		Color:    builtin.Canonical(r.Get("color")),
	}
}

func clientOf(r records.Record) schema.Client {
	return schema.Client{Name: r.Get("client_name"), Email: r.Get("client_email"), Phone: r.Get("client_phone")}
}

func sellerOf(r records.Record) schema.Seller {
	return schema.Seller{Name: r.Get("seller_name"), Position: r.Get("seller_position")}
}

func warehouseRef(r records.Record) schema.Warehouse {
	return schema.Warehouse{Name: r.Get("warehouse_name"), Address: r.Get("warehouse_address")}
}

// warehouseOf reads capacity and shelves as whole numbers; anything else is
// stored as NULL.
func (im *Importer) warehouseOf(r records.Record) schema.Warehouse {
	w := warehouseRef(r)
	w.Capacity = im.optionalInt(r, "warehouse_capacity")
	w.Shelves = im.optionalInt(r, "warehouse_shelves")
	return w
}

func (im *Importer) optionalInt(r records.Record, field string) *int64 {
	s := strings.TrimSpace(r.Get(field))
	if s == "" {
		return nil
	}
	n, ok := builtin.ParseInt(s)
	if !ok {
		if im.opt.Verbose {
			log.Printf("importer: row=%d %s=%q is not a whole number; storing NULL", r.Line, field, s)
		}
		return nil
	}
	return &n
}

func tupleHash(r records.Record, fields []string) xxh3.Uint128 {
	vals := make([]string, len(fields))
	for i, f := range fields {
		vals[i] = r.Get(f)
	}
	return builtin.HashTuple(vals...)
}

func describe(r records.Record, fields []string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s=%q", f, r.Get(f))
	}
	return strings.Join(parts, " ") + " not found"
}
