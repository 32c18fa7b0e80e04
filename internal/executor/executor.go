package executor

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"reflect"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	eventbus "github.com/hanpama/gqlcore/internal/eventbus"
	events "github.com/hanpama/gqlcore/internal/events"
	language "github.com/hanpama/gqlcore/internal/language"
	reqid "github.com/hanpama/gqlcore/internal/reqid"
	schema "github.com/hanpama/gqlcore/internal/schema"
	validation "github.com/hanpama/gqlcore/internal/validation"
)

// ErrIntrospectionDisabled is the field error of __schema and __type when
// introspection is turned off.
var ErrIntrospectionDisabled = errors.New("GraphQL introspection is not allowed")

type Executor struct {
	runtime Runtime
	schema  *schema.Schema
	opts    options
	pool    *ants.Pool
}

// New returns an Executor for s. The Executor is safe for concurrent use;
// call Close to release its worker pool.
func New(runtime Runtime, s *schema.Schema, opts ...Option) *Executor {
	o := defaultOptions()
	for _, f := range opts {
		f(&o)
	}
	e := &Executor{runtime: runtime, schema: s, opts: o}
	if o.maxConcurrency > 0 {
		pool, err := ants.NewPool(o.maxConcurrency,
			ants.WithNonblocking(true),
			ants.WithPanicHandler(func(v any) {
				o.logger.Error("executor worker panic", "panic", v)
			}))
		if err != nil {
			o.logger.Warn("executor worker pool unavailable, resolving inline", "error", err)
		} else {
			e.pool = pool
		}
	}
	return e
}

// Close releases the worker pool. Executions still running finish inline.
func (e *Executor) Close() {
	if e.pool != nil {
		e.pool.Release()
	}
}

// Schema returns the schema the Executor runs against.
func (e *Executor) Schema() *schema.Schema { return e.schema }

// Request holds the inputs of one execution.
type Request struct {
	Document      *language.ExecutableDocument
	OperationName string
	// Variables are raw input values, e.g. decoded JSON.
	Variables map[string]any
	RootValue any
}

// Execute runs req lazily: nothing happens until the sequence is ranged
// over. Queries and mutations yield exactly one result. Subscriptions yield
// one result per source event until the source ends, ctx is cancelled or
// the caller stops ranging, which also cancels the source.
//
// Request errors (validation, operation selection, variable coercion)
// yield a single result with null data.
func (e *Executor) Execute(ctx context.Context, req Request) iter.Seq[*ExecutionResult] {
	return func(yield func(*ExecutionResult) bool) {
		ctx := ctx
		if _, ok := reqid.FromContext(ctx); !ok {
			ctx, _ = reqid.NewContext(ctx)
		}
		x, errs := e.prepare(ctx, req)
		if len(errs) > 0 {
			yield(&ExecutionResult{Errors: errs})
			return
		}

		start := time.Now()
		opName, opType := x.operation.OperationName(), string(x.operation.Operation)
		eventbus.Publish(ctx, events.ExecutionStart{ExecutionID: x.id, OperationName: opName, OperationType: opType})
		var resultErrs []error
		defer func() {
			d := time.Since(start)
			eventbus.Publish(ctx, events.ExecutionFinish{
				ExecutionID:   x.id,
				OperationName: opName,
				OperationType: opType,
				Errors:        resultErrs,
				Duration:      d,
			})
			e.opts.logger.Debug("execution finished",
				"execution_id", x.id, "operation", opName, "type", opType,
				"errors", len(resultErrs), "duration", d)
		}()

		if x.operation.Operation == language.Subscription {
			x.subscribe(ctx, func(res *ExecutionResult) bool {
				for _, err := range res.Errors {
					resultErrs = append(resultErrs, err)
				}
				return yield(res)
			})
			return
		}
		res := x.executeOperation(ctx)
		for _, err := range res.Errors {
			resultErrs = append(resultErrs, err)
		}
		yield(res)
	}
}

// ExecuteRequest runs req and returns its first result. For a subscription
// that is the result of the first event, after which the source is
// cancelled.
func (e *Executor) ExecuteRequest(ctx context.Context, req Request) *ExecutionResult {
	for res := range e.Execute(ctx, req) {
		return res
	}
	return &ExecutionResult{}
}

// execution is the state of one operation. Fields are read-only once
// execution starts; errors are collected per field and merged in order.
type execution struct {
	schema    *schema.Schema
	runtime   Runtime
	pool      *ants.Pool
	opts      *options
	doc       *language.ExecutableDocument
	operation *language.OperationDefinition
	fragments map[string]*language.FragmentDefinition
	variables map[string]any
	rootValue any
	id        string
}

func (e *Executor) prepare(ctx context.Context, req Request) (*execution, []*Error) {
	if req.Document == nil {
		return nil, []*Error{{Message: "Must provide document."}}
	}
	if !e.opts.skipValidation {
		if verrs := validation.Validate(e.schema, req.Document); len(verrs) > 0 {
			errs := make([]*Error, len(verrs))
			for i, ve := range verrs {
				errs[i] = &Error{Message: ve.Message, Locations: ve.Locations, Err: ve}
			}
			return nil, errs
		}
	}
	operation, err := getOperation(req.Document, req.OperationName)
	if err != nil {
		return nil, []*Error{requestError(err)}
	}
	if e.schema.RootType(operation.Operation) == nil {
		return nil, []*Error{{
			Message:   fmt.Sprintf("Schema is not configured to execute %s operation.", operation.Operation),
			Locations: []language.SourceLocation{operation.Loc.SourceLocation()},
		}}
	}
	variables, errs := coerceVariableValues(e.schema, operation, req.Variables)
	if len(errs) > 0 {
		return nil, errs
	}
	fragments := make(map[string]*language.FragmentDefinition)
	for _, f := range req.Document.Fragments() {
		if _, ok := fragments[f.Name.Value]; !ok {
			fragments[f.Name.Value] = f
		}
	}
	id, _ := reqid.FromContext(ctx)
	return &execution{
		schema:    e.schema,
		runtime:   e.runtime,
		pool:      e.pool,
		opts:      &e.opts,
		doc:       req.Document,
		operation: operation,
		fragments: fragments,
		variables: variables,
		rootValue: req.RootValue,
		id:        id,
	}, nil
}

// getOperation selects the operation to run by name, or the only one.
func getOperation(doc *language.ExecutableDocument, operationName string) (*language.OperationDefinition, error) {
	ops := doc.Operations()
	if operationName == "" {
		switch len(ops) {
		case 0:
			return nil, errors.New("Must provide an operation.")
		case 1:
			return ops[0], nil
		}
		return nil, errors.New("Must provide operation name if query contains multiple operations.")
	}
	for _, op := range ops {
		if op.OperationName() == operationName {
			return op, nil
		}
	}
	return nil, fmt.Errorf("Unknown operation named %q.", operationName)
}

func (x *execution) executeOperation(ctx context.Context) *ExecutionResult {
	rootType := x.schema.RootType(x.operation.Operation)
	grouped := x.collectFields(rootType, x.operation.SelectionSet)
	var errs []*Error
	serial := x.operation.Operation == language.Mutation
	data, err := x.executeFields(ctx, &errs, rootType, x.rootValue, nil, grouped, serial)
	if err != nil {
		errs = append(errs, err)
		data = nil
	}
	return &ExecutionResult{Data: data, Errors: errs}
}

type fieldSlot struct {
	value   any
	err     *Error
	errs    []*Error
	skipped bool
}

// executeFields resolves a grouped field set on one object. Async fields are
// dispatched to the worker pool unless serial is set; every field records
// its errors in its own slot so that errors and values are assembled in
// grouped order. A non-nil *Error means a Non-Null field failed and the
// object itself is null.
func (x *execution) executeFields(ctx context.Context, errs *[]*Error, objectType *schema.Type, source any, path Path, grouped *collectedFieldMap, serial bool) (Map, *Error) {
	fields := grouped.orderedFields()
	slots := make([]fieldSlot, len(fields))
	var wg sync.WaitGroup
	for i, cf := range fields {
		slot := &slots[i]
		def := x.schema.FieldFor(objectType, cf.Fields[0].Name.Value)
		if def == nil {
			slot.skipped = true
			continue
		}
		fieldPath := appendPath(path, cf.ResponseName)
		run := func() {
			slot.value, slot.err = x.executeField(ctx, &slot.errs, objectType, source, def, cf.Fields, fieldPath)
		}
		if serial {
			run()
			if slot.err != nil {
				slots = slots[:i+1]
				break
			}
			continue
		}
		if def.Async && x.pool != nil {
			wg.Add(1)
			if err := x.pool.Submit(func() { defer wg.Done(); run() }); err != nil {
				wg.Done()
				run()
			}
			continue
		}
		run()
	}
	wg.Wait()

	out := make(Map, 0, len(fields))
	var propagated *Error
	for i := range slots {
		slot := &slots[i]
		*errs = append(*errs, slot.errs...)
		if slot.skipped {
			continue
		}
		if slot.err != nil {
			if propagated == nil {
				propagated = slot.err
			} else {
				*errs = append(*errs, slot.err)
			}
			continue
		}
		out = append(out, Entry{Key: fields[i].ResponseName, Value: slot.value})
	}
	if propagated != nil {
		return nil, propagated
	}
	return out, nil
}

// executeField resolves and completes one grouped field. Errors of a
// nullable field are recorded in errs and the field becomes null; errors of
// a Non-Null field are returned for the parent to propagate.
func (x *execution) executeField(ctx context.Context, errs *[]*Error, parentType *schema.Type, source any, def *schema.Field, fields []*language.Field, path Path) (any, *Error) {
	name := fields[0].Name.Value
	if name == "__typename" {
		return parentType.Name, nil
	}
	info := schema.ResolveInfo{
		FieldName:  name,
		FieldNodes: fields,
		ReturnType: def.Type,
		ParentType: parentType,
		Path:       path,
		Schema:     x.schema,
		Fragments:  x.fragments,
		Operation:  x.operation,
		RootValue:  x.rootValue,
		Variables:  x.variables,
	}

	var (
		value any
		ferr  *Error
	)
	raw, err := x.resolveFieldValue(ctx, def, fields, source, info)
	if err != nil {
		ferr = locatedError(err, fields, path)
	} else {
		value, ferr = x.completeValue(ctx, errs, def.Type, fields, info, path, raw)
	}
	if ferr != nil {
		if def.Type.IsNonNull() {
			return nil, ferr
		}
		*errs = append(*errs, ferr)
		return nil, nil
	}
	return value, nil
}

func (x *execution) resolveFieldValue(ctx context.Context, def *schema.Field, fields []*language.Field, source any, info schema.ResolveInfo) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !x.opts.introspection && (info.FieldName == "__schema" || info.FieldName == "__type") {
		return nil, ErrIntrospectionDisabled
	}
	args, err := coerceArgumentValues(def.Arguments, fields[0].Arguments, x.variables)
	if err != nil {
		return nil, err
	}
	p := schema.ResolveParams{Source: source, Args: args, Info: info}
	if def.Resolve == nil {
		return x.callResolver(ctx, def, p)
	}

	pathText := Path(info.Path).String()
	start := time.Now()
	eventbus.Publish(ctx, events.ResolverStart{
		ExecutionID: x.id,
		ParentType:  info.ParentType.Name,
		Field:       def.Name,
		Path:        pathText,
	})
	value, err := x.callResolver(ctx, def, p)
	eventbus.Publish(ctx, events.ResolverFinish{
		ExecutionID: x.id,
		ParentType:  info.ParentType.Name,
		Field:       def.Name,
		Path:        pathText,
		Err:         err,
		Duration:    time.Since(start),
	})
	return value, err
}

func (x *execution) callResolver(ctx context.Context, def *schema.Field, p schema.ResolveParams) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			x.opts.logger.Error("resolver panic",
				"execution_id", x.id, "field", p.Info.ParentType.Name+"."+def.Name, "panic", r)
			err = fmt.Errorf("resolver panic: %v", r)
		}
	}()
	return x.runtime.ResolveField(ctx, def, p)
}

// completeValue completes a resolved value against its type.
func (x *execution) completeValue(ctx context.Context, errs *[]*Error, t *schema.TypeRef, fields []*language.Field, info schema.ResolveInfo, path Path, result any) (any, *Error) {
	if t.IsNonNull() {
		completed, err := x.completeValue(ctx, errs, t.OfType, fields, info, path, result)
		if err != nil {
			return nil, err
		}
		if completed == nil {
			return nil, locatedError(fmt.Errorf("Cannot return null for non-nullable field %s.%s.", info.ParentType.Name, info.FieldName), fields, path)
		}
		return completed, nil
	}
	if isNullish(result) {
		return nil, nil
	}
	if err, ok := result.(error); ok {
		return nil, locatedError(err, fields, path)
	}
	if t.Kind == schema.TypeRefKindList {
		return x.completeListValue(ctx, errs, t, fields, info, path, result)
	}

	named := t.Type
	switch named.Kind {
	case schema.TypeKindScalar, schema.TypeKindEnum:
		return x.completeLeafValue(ctx, named, fields, path, result)
	case schema.TypeKindObject:
		return x.completeObjectValue(ctx, errs, named, fields, path, result)
	case schema.TypeKindInterface, schema.TypeKindUnion:
		return x.completeAbstractValue(ctx, errs, named, fields, info, path, result)
	}
	return nil, locatedError(fmt.Errorf("Cannot complete value of unexpected output type: %q.", named.Name), fields, path)
}

// completeListValue completes every item in order. A failed Non-Null item
// nulls the whole list.
func (x *execution) completeListValue(ctx context.Context, errs *[]*Error, t *schema.TypeRef, fields []*language.Field, info schema.ResolveInfo, path Path, result any) (any, *Error) {
	items, ok := listItems(result)
	if !ok {
		return nil, locatedError(fmt.Errorf("Expected Iterable, but did not find one for field \"%s.%s\".", info.ParentType.Name, info.FieldName), fields, path)
	}
	itemType := t.OfType
	completed := make([]any, len(items))
	for i, item := range items {
		v, err := x.completeValue(ctx, errs, itemType, fields, info, appendPath(path, i), item)
		if err != nil {
			if itemType.IsNonNull() {
				return nil, err
			}
			*errs = append(*errs, err)
			v = nil
		}
		completed[i] = v
	}
	return completed, nil
}

func (x *execution) completeLeafValue(ctx context.Context, t *schema.Type, fields []*language.Field, path Path, result any) (any, *Error) {
	result = derefBasic(result)
	serialized, err := x.runtime.SerializeLeafValue(ctx, t, result)
	if err != nil {
		return nil, locatedError(err, fields, path)
	}
	if serialized == nil {
		return nil, locatedError(fmt.Errorf("Expected `%s.serialize(%v)` to return non-nullish value, returned: null", t.Name, result), fields, path)
	}
	return serialized, nil
}

func (x *execution) completeAbstractValue(ctx context.Context, errs *[]*Error, abstract *schema.Type, fields []*language.Field, info schema.ResolveInfo, path Path, result any) (any, *Error) {
	typeName, err := x.runtime.ResolveType(ctx, abstract, result, info)
	if err != nil {
		return nil, locatedError(err, fields, path)
	}
	if typeName == "" {
		return nil, locatedError(fmt.Errorf(
			"Abstract type %q must resolve to an Object type at runtime for field \"%s.%s\". Either the %q type should provide a \"resolveType\" function or each possible type should provide an \"isTypeOf\" function.",
			abstract.Name, info.ParentType.Name, info.FieldName, abstract.Name), fields, path)
	}
	runtimeType := x.schema.Type(typeName)
	switch {
	case runtimeType == nil:
		return nil, locatedError(fmt.Errorf("Abstract type %q was resolved to a type %q that does not exist inside the schema.", abstract.Name, typeName), fields, path)
	case runtimeType.Kind != schema.TypeKindObject:
		return nil, locatedError(fmt.Errorf("Abstract type %q was resolved to a non-object type %q.", abstract.Name, typeName), fields, path)
	case !x.schema.IsPossibleType(abstract, runtimeType):
		return nil, locatedError(fmt.Errorf("Runtime Object type %q is not a possible type for %q.", typeName, abstract.Name), fields, path)
	}
	return x.completeObjectValue(ctx, errs, runtimeType, fields, path, result)
}

func (x *execution) completeObjectValue(ctx context.Context, errs *[]*Error, objectType *schema.Type, fields []*language.Field, path Path, result any) (any, *Error) {
	if objectType.IsTypeOf != nil && !objectType.IsTypeOf(result) {
		return nil, locatedError(fmt.Errorf("Expected value of type %q but got: %s.", objectType.Name, inspect(result)), fields, path)
	}
	grouped := x.collectSubfields(objectType, fields)
	m, err := x.executeFields(ctx, errs, objectType, result, path, grouped, false)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// derefBasic dereferences pointers to booleans, numbers and strings so
// leaf serializers see plain values.
func derefBasic(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return v
	}
	switch rv.Elem().Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return rv.Elem().Interface()
	}
	return v
}
