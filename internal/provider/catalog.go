package provider

// Resource describes how one logical resource maps onto the SQL backend.
// Reads go through ReadFrom (usually a view with names joined in); writes go
// to WriteTo. Columns lists what a Fetch returns and may filter or sort on.
type Resource struct {
	Name     string
	ReadFrom string
	WriteTo  string
	Columns  []string
	Writable []string
}

func (r Resource) hasColumn(name string) bool {
	for _, c := range r.Columns {
		if c == name {
			return true
		}
	}
	return false
}

func (r Resource) canWrite(name string) bool {
	for _, c := range r.Writable {
		if c == name {
			return true
		}
	}
	return false
}

// Resource names used by the board.
const (
	ResourceOrders             = "orders"
	ResourceOrderDetails       = "order_details"
	ResourceMillingTypes       = "milling_types"
	ResourceMaterials          = "materials"
	ResourceProductionStatuses = "production_statuses"
	ResourceOrderStatuses      = "order_statuses"
	ResourcePaymentStatuses    = "payment_statuses"
	ResourceProductionEvents   = "order_production_events"
	ResourceOrderLinks         = "order_links"
	ResourceEmployees          = "employees"
	ResourceClients            = "clients"
)

// DefaultCatalog returns the resource catalog of the board's backend schema.
func DefaultCatalog() map[string]Resource {
	resources := []Resource{
		{
			Name:     ResourceOrders,
			ReadFrom: "orders_view",
			WriteTo:  "orders",
			Columns: []string{
				"id", "name", "schedule_date", "area", "client_id", "client_name", "manager_id",
				"order_status_id", "order_status_name",
				"payment_status_id", "payment_status_name",
				"production_status_id", "production_status_name", "production_status_auto",
				"comment",
			},
			Writable: []string{
				"name", "schedule_date", "area", "client_id", "manager_id",
				"order_status_id", "payment_status_id", "production_status_id",
				"production_status_auto", "comment",
			},
		},
		{
			Name:     ResourceOrderDetails,
			ReadFrom: "order_details",
			WriteTo:  "order_details",
			Columns: []string{
				"id", "order_id", "milling_type_id", "material_id", "production_status_id",
				"area", "quantity", "note", "deleted",
			},
			Writable: []string{
				"order_id", "milling_type_id", "material_id", "production_status_id",
				"area", "quantity", "note", "deleted",
			},
		},
		lookupResource(ResourceMillingTypes),
		lookupResource(ResourceMaterials),
		lookupResource(ResourceOrderStatuses),
		lookupResource(ResourcePaymentStatuses),
		lookupResource(ResourceClients),
		{
			Name:     ResourceProductionStatuses,
			ReadFrom: "production_statuses",
			WriteTo:  "production_statuses",
			Columns:  []string{"id", "name", "code"},
			Writable: []string{"name", "code"},
		},
		{
			Name:     ResourceProductionEvents,
			ReadFrom: "order_production_events",
			WriteTo:  "order_production_events",
			Columns:  []string{"id", "order_id", "detail_id", "production_status_id", "payload", "created_at"},
			Writable: []string{"order_id", "detail_id", "production_status_id", "payload"},
		},
		{
			Name:     ResourceOrderLinks,
			ReadFrom: "order_links_view",
			WriteTo:  "order_links",
			Columns:  []string{"id", "order_id", "secondary_order_id", "secondary_order_name"},
			Writable: []string{"order_id", "secondary_order_id"},
		},
		{
			Name:     ResourceEmployees,
			ReadFrom: "employees",
			WriteTo:  "employees",
			Columns:  []string{"id", "full_name"},
			Writable: []string{"full_name"},
		},
	}

	catalog := make(map[string]Resource, len(resources))
	for _, r := range resources {
		catalog[r.Name] = r
	}
	return catalog
}

func lookupResource(name string) Resource {
	return Resource{
		Name:     name,
		ReadFrom: name,
		WriteTo:  name,
		Columns:  []string{"id", "name"},
		Writable: []string{"name"},
	}
}
