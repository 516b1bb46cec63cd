package dbfield

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strconv"
	"strings"
)

func sendHttpError(w http.ResponseWriter, message string, statusCode int) {
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(html.EscapeString(message)))
}

// Modes accepted by the scaffold API in ParamMode.
const (
	ScaffoldModeForm   = "form"
	ScaffoldModeSearch = "search"
	ScaffoldModeList   = "list"
)

// ScaffoldApiConfig configures HandleScaffoldApi.
type ScaffoldApiConfig struct {
	// TableFunc returns a fresh table per request, so field values are
	// never shared between requests.
	TableFunc         func(name string) (*Table, error)
	Resolver          WidgetResolver
	Conn              *Connection // nil disables list, record and save requests
	AdditionalHeaders map[string]string
	DefaultPageSize   int

	ParamTable string
	ParamMode  string
	ParamID    string
	ParamType  string
	ParamValue string

	BeforeMiddleware func(http.ResponseWriter, *http.Request) bool
	Context          func(r *http.Request) context.Context
}

// CreateScaffoldApiConfig serves the given table definitions.
func CreateScaffoldApiConfig(defs ...TableDef) ScaffoldApiConfig {
	byName := make(map[string]TableDef, len(defs))
	for _, d := range defs {
		byName[strings.ToLower(d.Name)] = d
	}
	return ScaffoldApiConfig{
		TableFunc: func(name string) (*Table, error) {
			d, ok := byName[strings.ToLower(name)]
			if !ok {
				return nil, fmt.Errorf("unknown table %q", name)
			}
			return d.Build()
		},
		AdditionalHeaders: make(map[string]string),
		DefaultPageSize:   20,

		ParamTable: "table",
		ParamMode:  "mode",
		ParamID:    "id",
		ParamType:  "type",
		ParamValue: "value",
	}
}

// HandleScaffoldApi serves form descriptors, renderings and records.
//
//	GET  ?table=T[&mode=form|search]   form descriptors
//	GET  ?table=T&mode=list[&Field=v]  rows matching the default search filters
//	GET  ?table=T&id=N                 one record
//	POST ?table=T[&id=N]               insert, or update the submitted fields
//	GET  ?type=Bigint&value=42         the value in every output context
func HandleScaffoldApi(config ScaffoldApiConfig) func(w http.ResponseWriter, r *http.Request) {

	return func(w http.ResponseWriter, r *http.Request) {

		if config.BeforeMiddleware != nil {
			if !config.BeforeMiddleware(w, r) {
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		for key, value := range config.AdditionalHeaders {
			w.Header().Set(key, value)
		}

		q := r.URL.Query()
		switch r.Method {
		case http.MethodGet:
			switch {
			case q.Has(config.ParamType):
				responseRender(config, r, w)
			case !q.Has(config.ParamTable):
				sendHttpError(w, fmt.Sprintf("Missing '%s' parameter", config.ParamTable), http.StatusBadRequest)
			case q.Has(config.ParamID):
				responseRecord(config, r, w)
			case q.Get(config.ParamMode) == ScaffoldModeList:
				responseList(config, r, w)
			default:
				responseForm(config, r, w)
			}
		case http.MethodPost:
			if !q.Has(config.ParamTable) {
				sendHttpError(w, fmt.Sprintf("Missing '%s' parameter", config.ParamTable), http.StatusBadRequest)
				return
			}
			responseSave(config, r, w)
		default:
			sendHttpError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func requestContext(config ScaffoldApiConfig, r *http.Request) context.Context {
	if config.Context != nil {
		return config.Context(r)
	}
	return r.Context()
}

func loadTable(config ScaffoldApiConfig, r *http.Request, w http.ResponseWriter, methodPrefix string) *Table {
	table, err := config.TableFunc(r.URL.Query().Get(config.ParamTable))
	if err != nil {
		sendHttpError(w, fmt.Sprintf("%s%v", methodPrefix, err), http.StatusNotFound)
		return nil
	}
	return table
}

func writeJSON(w http.ResponseWriter, v any, methodPrefix string) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		sendHttpError(w, fmt.Sprintf("%sfailed to encode JSON: %v", methodPrefix, err), http.StatusInternalServerError)
	}
}

func responseForm(config ScaffoldApiConfig, r *http.Request, w http.ResponseWriter) {
	const methodPrefix = "ScaffoldApi.responseForm: "
	table := loadTable(config, r, w, methodPrefix)
	if table == nil {
		return
	}
	var form []*FormField
	switch mode := r.URL.Query().Get(config.ParamMode); mode {
	case "", ScaffoldModeForm:
		form = table.ScaffoldForm(config.Resolver)
	case ScaffoldModeSearch:
		form = table.ScaffoldSearchForm(config.Resolver)
	default:
		sendHttpError(w, fmt.Sprintf("%sunknown mode %q", methodPrefix, mode), http.StatusBadRequest)
		return
	}
	writeJSON(w, form, methodPrefix)
}

func responseRender(config ScaffoldApiConfig, r *http.Request, w http.ResponseWriter) {
	const methodPrefix = "ScaffoldApi.responseRender: "
	q := r.URL.Query()
	f, err := Create(q.Get(config.ParamType), q.Get(config.ParamValue))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrUnknownFieldType) {
			status = http.StatusNotFound
		}
		sendHttpError(w, fmt.Sprintf("%s%v", methodPrefix, err), status)
		return
	}
	writeJSON(w, Renderings(f), methodPrefix)
}

func responseRecord(config ScaffoldApiConfig, r *http.Request, w http.ResponseWriter) {
	const methodPrefix = "ScaffoldApi.responseRecord: "
	if config.Conn == nil {
		sendHttpError(w, "", http.StatusNotFound)
		return
	}
	id, err := strconv.ParseInt(r.URL.Query().Get(config.ParamID), 10, 64)
	if err != nil {
		sendHttpError(w, fmt.Sprintf("%sinvalid id: %v", methodPrefix, err), http.StatusBadRequest)
		return
	}
	table := loadTable(config, r, w, methodPrefix)
	if table == nil {
		return
	}
	rec, err := table.LoadRecord(requestContext(config, r), config.Conn, id)
	if errors.Is(err, ErrRecordNotFound) {
		sendHttpError(w, fmt.Sprintf("%s%v", methodPrefix, err), http.StatusNotFound)
		return
	}
	if err != nil {
		sendHttpError(w, fmt.Sprintf("%sfailed to load record: %v", methodPrefix, err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, rec, methodPrefix)
}

func responseList(config ScaffoldApiConfig, r *http.Request, w http.ResponseWriter) {
	const methodPrefix = "ScaffoldApi.responseList: "
	if config.Conn == nil {
		sendHttpError(w, "", http.StatusNotFound)
		return
	}
	table := loadTable(config, r, w, methodPrefix)
	if table == nil {
		return
	}
	values := make(map[string]string)
	for k, v := range r.URL.Query() {
		if f := table.Field(k); f != nil && len(v) > 0 {
			values[f.Name()] = v[0]
		}
	}
	records, err := table.Search(requestContext(config, r), config.Conn, values, config.DefaultPageSize)
	if err != nil {
		sendHttpError(w, fmt.Sprintf("%sfailed to fetch list: %v", methodPrefix, err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, records, methodPrefix)
}

func responseSave(config ScaffoldApiConfig, r *http.Request, w http.ResponseWriter) {
	const methodPrefix = "ScaffoldApi.responseSave: "
	if config.Conn == nil {
		sendHttpError(w, "", http.StatusNotFound)
		return
	}
	table := loadTable(config, r, w, methodPrefix)
	if table == nil {
		return
	}
	var id int64
	if s := r.URL.Query().Get(config.ParamID); s != "" {
		var err error
		if id, err = strconv.ParseInt(s, 10, 64); err != nil {
			sendHttpError(w, fmt.Sprintf("%sinvalid id: %v", methodPrefix, err), http.StatusBadRequest)
			return
		}
	}

	body := MapRecord{}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		sendHttpError(w, fmt.Sprintf("%sinvalid request data: %v", methodPrefix, err), http.StatusBadRequest)
		return
	}

	ctx := requestContext(config, r)
	// fields missing from the body keep their stored values
	if id != 0 {
		if _, err := table.LoadRecord(ctx, config.Conn, id); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, ErrRecordNotFound) {
				status = http.StatusNotFound
			}
			sendHttpError(w, fmt.Sprintf("%s%v", methodPrefix, err), status)
			return
		}
	}
	if err := LoadFields(body, table.Fields...); err != nil {
		sendHttpError(w, fmt.Sprintf("%s%v", methodPrefix, err), http.StatusBadRequest)
		return
	}

	newID, err := table.Save(ctx, config.Conn, id)
	if errors.Is(err, ErrRecordNotFound) {
		sendHttpError(w, fmt.Sprintf("%s%v", methodPrefix, err), http.StatusNotFound)
		return
	}
	if err != nil {
		sendHttpError(w, fmt.Sprintf("%sfailed to save record: %v", methodPrefix, err), http.StatusInternalServerError)
		return
	}
	// echo the stored row so column defaults show up
	res, err := table.LoadRecord(ctx, config.Conn, newID)
	if err != nil {
		sendHttpError(w, fmt.Sprintf("%sfailed to reload record: %v", methodPrefix, err), http.StatusInternalServerError)
		return
	}
	if id == 0 {
		w.WriteHeader(http.StatusCreated)
	}
	writeJSON(w, res, methodPrefix)
}

// Rendering is one output context of a value.
type Rendering struct {
	Context string `json:"context"`
	Value   string `json:"value"`
}

// Renderings lists f's value in every output context, in a fixed order.
func Renderings(f IDBField) []Rendering {
	res := []Rendering{
		{"RAW", f.RAW()},
		{"Nice", f.Nice()},
		{"HTML", f.HTML()},
		{"XML", f.XML()},
		{"ATT", f.ATT()},
		{"HTMLATT", f.HTMLATT()},
		{"URLATT", f.URLATT()},
		{"RAWURLATT", f.RAWURLATT()},
		{"JS", f.JS()},
	}
	for _, d := range []Dialect{DbDialectMySQL, DbDialectPostgres, DbDialectSQLite, DbDialectMSSQL} {
		sv, err := f.SqlStringValue(d)
		if err != nil {
			continue
		}
		res = append(res, Rendering{"SQL/" + d.String(), sv})
	}
	return res
}
