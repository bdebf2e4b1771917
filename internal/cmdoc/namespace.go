package cmdoc

// Schema URIs used for tag scoping in bulk CM exports.
const (
	NSVendor  = "EricssonSpecificAttributes.xsd"
	NSGeneric = "genericNrm.xsd"
	NSUtran   = "utranNrm.xsd"
	NSGeran   = "geranNrm.xsd"
)

// Namespaces maps the short scope names used by the export to their schema URIs.
var Namespaces = map[string]string{
	"es": NSVendor,
	"xn": NSGeneric,
	"un": NSUtran,
	"gn": NSGeran,
}

// Resolve returns the schema URI for a short scope name. Anything that is not a
// known short name is taken to be a URI already.
func Resolve(scope string) string {
	if uri, ok := Namespaces[scope]; ok {
		return uri
	}
	return scope
}

// Vendor returns the name of a vendor-specific (es) element.
func Vendor(local string) Name {
	return Name{Space: NSVendor, Local: local}
}

// Generic returns the name of a generic NRM (xn) element.
func Generic(local string) Name {
	return Name{Space: NSGeneric, Local: local}
}

// repairSpace binds a prefix the document used without declaring it. The decoder
// leaves such prefixes untranslated in Name.Space.
func repairSpace(space string) string {
	if uri, ok := Namespaces[space]; ok {
		return uri
	}
	return space
}
