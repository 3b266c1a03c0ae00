package cli

import (
	"fmt"
	"sort"
	"strings"
)

// column maps a table heading to a gjson path in the resource row.
type column struct {
	Header string
	Path   string
}

// resourceInfo describes one addressable resource type.
type resourceInfo struct {
	// Path is the API collection path, with trailing slash.
	Path string
	// Columns drive the human-readable table output.
	Columns []column
	// ReadOnly resources reject create, update, and delete.
	ReadOnly bool
}

// resourceTypes maps the CLI resource names to their API routes. Names follow
// the plural-kebab convention; a few aliases cover the obvious singulars.
var resourceTypes = map[string]resourceInfo{
	"customers": {
		Path: "customers/",
		Columns: []column{
			{"ID", "id"}, {"FIRST NAME", "first_name"}, {"LAST NAME", "last_name"}, {"PHONE", "phone"},
		},
	},
	"vehicles": {
		Path: "vehicle/",
		Columns: []column{
			{"ID", "id"}, {"MAKE", "make"}, {"MODEL", "model"}, {"PLATE", "license_plate"}, {"CUSTOMER", "customer"},
		},
	},
	"mechanics": {
		Path: "mechanic/",
		Columns: []column{
			{"ID", "id"}, {"FIRST NAME", "first_name"}, {"LAST NAME", "last_name"}, {"SITE", "site"},
		},
	},
	"sites": {
		Path: "sites/",
		Columns: []column{
			{"ID", "id"}, {"NAME", "name"}, {"ADDRESS", "address"},
		},
	},
	"service-requests": {
		Path: "service_request/",
		Columns: []column{
			{"ID", "id"}, {"CUSTOMER", "customer"}, {"VEHICLE", "vehicle"}, {"TYPE", "service_type_display"}, {"STATUS", "status"},
		},
	},
	"service-categories": {
		Path:     "service-categories/",
		ReadOnly: true,
		Columns: []column{
			{"ID", "id"}, {"NAME", "name"},
		},
	},
	"products": {
		Path: "products/",
		Columns: []column{
			{"ID", "id"}, {"NAME", "name"}, {"FMSI", "fmsi_number"}, {"TYPE", "product_type"}, {"PRICE", "unit_price"},
		},
	},
	"appointments": {
		Path: "appointments/",
		Columns: []column{
			{"ID", "id"}, {"NUMBER", "display_number"}, {"DATE", "scheduled_date"}, {"TIME", "scheduled_time"}, {"STATUS", "status"},
		},
	},
	"inventory": {
		Path: "inventory/",
		Columns: []column{
			{"ID", "id"}, {"PRODUCT", "product"}, {"SITE", "site"}, {"ON HAND", "quantity_on_hand"}, {"REORDER AT", "reorder_level"},
		},
	},
	"low-stock": {
		Path:     "inventory/low-stock/",
		ReadOnly: true,
		Columns: []column{
			{"PRODUCT", "product_name"}, {"SITE", "site_name"}, {"ON HAND", "quantity_on_hand"}, {"REORDER AT", "reorder_level"},
		},
	},
	"invoices": {
		Path: "invoices/",
		Columns: []column{
			{"ID", "id"}, {"SERVICE REQUEST", "service_request"}, {"TOTAL", "total_cost"}, {"PAID", "paid"}, {"METHOD", "payment_method"},
		},
	},
	"promotions": {
		Path:     "promotions/active/",
		ReadOnly: true,
		Columns: []column{
			{"ID", "id"}, {"NAME", "name"}, {"DISCOUNT", "discount"}, {"ENDS", "ends_at"},
		},
	},
	"audit": {
		Path:     "audit/",
		ReadOnly: true,
		Columns: []column{
			{"ID", "id"}, {"WHEN", "created_at"}, {"ACTION", "action"}, {"MODEL", "model_label"}, {"OBJECT", "object_repr"}, {"USER", "user"},
		},
	},
}

var resourceAliases = map[string]string{
	"customer":        "customers",
	"vehicle":         "vehicles",
	"mechanic":        "mechanics",
	"site":            "sites",
	"service-request": "service-requests",
	"product":         "products",
	"appointment":     "appointments",
	"invoice":         "invoices",
}

// lookupResource resolves a CLI resource name, following aliases.
func lookupResource(name string) (resourceInfo, error) {
	key := strings.ToLower(name)
	if alias, ok := resourceAliases[key]; ok {
		key = alias
	}
	info, ok := resourceTypes[key]
	if !ok {
		return resourceInfo{}, fmt.Errorf("unknown resource type %q. Supported: %s", name, supportedResources())
	}
	return info, nil
}

func supportedResources() string {
	names := make([]string, 0, len(resourceTypes))
	for name := range resourceTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
