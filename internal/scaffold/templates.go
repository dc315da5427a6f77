package scaffold

// File is one placeholder-bearing template file. Both the path and the
// content are text/template sources rendered against the same context.
type File struct {
	Path    string
	Content string
}

// BuiltinTemplates returns the default template set for a new schema module:
// entity and service definitions under the versioned directory, plus module
// documentation at the module root.
func BuiltinTemplates() []File {
	return []File{
		{Path: "{{ .Version }}/{{ .ModuleSnake }}.proto", Content: entityTemplate},
		{Path: "{{ .Version }}/{{ .ModuleSnake }}_service.proto", Content: serviceTemplate},
		{Path: "README.md", Content: readmeTemplate},
	}
}

const entityTemplate = `syntax = "proto3";

package {{ .ModuleSnake }}.{{ .Version }};

option java_package = "io.schemaforge.{{ .ModuleSnake }}.{{ .Version }}";
option java_multiple_files = true;

// {{ .Description }}

message {{ .Entity }} {
  string id = 1;
  string display_name = 2;
  int64 created_at = 3;
}
`

const serviceTemplate = `syntax = "proto3";

package {{ .ModuleSnake }}.{{ .Version }};

import "{{ .Module }}/{{ .Version }}/{{ .ModuleSnake }}.proto";

message Get{{ .Entity }}Request {
  string id = 1;
}

message List{{ .Entity }}sRequest {
  int32 page_size = 1;
  string page_token = 2;
}

message List{{ .Entity }}sResponse {
  repeated {{ .Entity }} {{ .EntitySnake }}s = 1;
  string next_page_token = 2;
}

service {{ .Entity }}Service {
  rpc Get{{ .Entity }}(Get{{ .Entity }}Request) returns ({{ .Entity }});
  rpc List{{ .Entity }}s(List{{ .Entity }}sRequest) returns (List{{ .Entity }}sResponse);
}
`

const readmeTemplate = `# {{ .ModuleTitle }}

{{ .Description }}

- Module: ` + "`{{ .Module }}`" + `
- Proto package: ` + "`{{ .ModuleSnake }}.{{ .Version }}`" + `
- Primary entity: ` + "`{{ .Entity }}`" + `
- Environment prefix: ` + "`{{ .ModuleUpper }}_`" + `

Created {{ .Date }}. Client packages for every ecosystem are generated from
the definitions under ` + "`{{ .Version }}/`" + `; workspace manifests are kept in
sync automatically.
`
