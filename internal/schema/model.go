// Package schema declares the normalized orders store: four entity tables
// keyed by surrogate ids and an orders fact table that references them.
package schema

import "ordersnf/internal/ddl"

const (
	ClientsTable    = "clients"
	ModelsTable     = "models"
	SellersTable    = "sellers"
	WarehousesTable = "warehouses"
	OrdersTable     = "orders"
)

// Client is a buyer identified by name, email and phone.
type Client struct {
	Name  string `db:"client_name"`
	Email string `db:"client_email"`
	Phone string `db:"client_phone"`
}

func (c Client) Values() []any { return []any{c.Name, c.Email, c.Phone} }

// Seller is a sales person identified by name and position.
type Seller struct {
	Name     string `db:"seller_name"`
	Position string `db:"seller_position"`
}

func (s Seller) Values() []any { return []any{s.Name, s.Position} }

// Warehouse is a shipping location. Capacity and Shelves are descriptive and
// not part of its identity.
type Warehouse struct {
	Name     string `db:"warehouse_name"`
	Address  string `db:"warehouse_address"`
	Capacity *int64 `db:"warehouse_capacity"`
	Shelves  *int64 `db:"warehouse_shelves"`
}

func (w Warehouse) Key() []any { return []any{w.Name, w.Address} }

func (w Warehouse) Values() []any {
	return []any{w.Name, w.Address, nullableInt(w.Capacity), nullableInt(w.Shelves)}
}

// Model is a product variant. All five fields are stored canonicalized.
type Model struct {
	Name     string `db:"model_name"`
	Category string `db:"category"`
	Brand    string `db:"brand"`
	Size     string `db:"size"`
	Color    string `db:"color"`
}

func (m Model) Values() []any { return []any{m.Name, m.Category, m.Brand, m.Size, m.Color} }

// Order is one row of the fact table.
type Order struct {
	ID          int64    `db:"order_id"`
	Date        string   `db:"order_date"`
	ClientID    int64    `db:"client_id"`
	ModelID     int64    `db:"model_id"`
	Price       *float64 `db:"price"`
	Quantity    *int64   `db:"quantity"`
	SellerID    int64    `db:"seller_id"`
	WarehouseID int64    `db:"warehouse_id"`
}

func (o Order) Values() []any {
	var price any
	if o.Price != nil {
		price = *o.Price
	}
	return []any{o.ID, o.Date, o.ClientID, o.ModelID, price, nullableInt(o.Quantity), o.SellerID, o.WarehouseID}
}

func nullableInt(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func pk(name string) ddl.ColumnDef {
	return ddl.ColumnDef{Name: name, Kind: ddl.KindInteger, PrimaryKey: true, AutoIncrement: true}
}

func text(name string) ddl.ColumnDef {
	return ddl.ColumnDef{Name: name, Kind: ddl.KindText}
}

func ref(name, table string) ddl.ColumnDef {
	return ddl.ColumnDef{
		Name:       name,
		Kind:       ddl.KindInteger,
		References: &ddl.ForeignKey{Table: table, Column: name},
	}
}

var (
	Clients = ddl.TableDef{
		Name:    ClientsTable,
		Display: "Клиенты",
		Columns: []ddl.ColumnDef{
			pk("client_id"),
			text("client_name"),
			text("client_email"),
			text("client_phone"),
		},
		Unique: []string{"client_name", "client_email", "client_phone"},
	}

	Models = ddl.TableDef{
		Name:    ModelsTable,
		Display: "Модели обуви",
		Columns: []ddl.ColumnDef{
			pk("model_id"),
			text("model_name"),
			text("category"),
			text("brand"),
			text("size"),
			text("color"),
		},
		Unique: []string{"model_name", "category", "brand", "size", "color"},
	}

	Sellers = ddl.TableDef{
		Name:    SellersTable,
		Display: "Продавцы",
		Columns: []ddl.ColumnDef{
			pk("seller_id"),
			text("seller_name"),
			text("seller_position"),
		},
		Unique: []string{"seller_name", "seller_position"},
	}

	Warehouses = ddl.TableDef{
		Name:    WarehousesTable,
		Display: "Склады",
		Columns: []ddl.ColumnDef{
			pk("warehouse_id"),
			text("warehouse_name"),
			text("warehouse_address"),
			{Name: "warehouse_capacity", Kind: ddl.KindInteger, Nullable: true},
			{Name: "warehouse_shelves", Kind: ddl.KindInteger, Nullable: true},
		},
		Unique: []string{"warehouse_name", "warehouse_address"},
	}

	Orders = ddl.TableDef{
		Name:    OrdersTable,
		Display: "Заказы",
		Columns: []ddl.ColumnDef{
			{Name: "order_id", Kind: ddl.KindInteger, PrimaryKey: true},
			{Name: "order_date", Kind: ddl.KindText},
			ref("client_id", ClientsTable),
			ref("model_id", ModelsTable),
			{Name: "price", Kind: ddl.KindReal, Nullable: true},
			{Name: "quantity", Kind: ddl.KindInteger, Nullable: true},
			ref("seller_id", SellersTable),
			ref("warehouse_id", WarehousesTable),
		},
	}
)

// Tables returns the table definitions in creation order: referenced tables
// before orders. Browsing uses the same order.
func Tables() []ddl.TableDef {
	return []ddl.TableDef{Clients, Models, Sellers, Warehouses, Orders}
}

// Lookup returns the table definition by name.
func Lookup(name string) (ddl.TableDef, bool) {
	for _, t := range Tables() {
		if t.Name == name {
			return t, true
		}
	}
	return ddl.TableDef{}, false
}
