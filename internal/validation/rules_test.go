package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueOperationNames(t *testing.T) {
	t.Run("distinct names", func(t *testing.T) {
		expectValid(t, UniqueOperationNames, `
			query getDogName { dog { name } }
			query getOwnerName { dog { owner { name } } }`)
	})
	t.Run("one repeat", func(t *testing.T) {
		errs := validate(t, `
			query X { dog { name } }
			query X { dog { owner { name } } }`, UniqueOperationNames)
		assert.Equal(t, []string{`There can be only one operation named "X".`}, messages(errs))
		assert.Len(t, errs[0].Locations, 2)
	})
	t.Run("across operation kinds", func(t *testing.T) {
		expectErrors(t, UniqueOperationNames, `
			query dogOperation { dog { name } }
			mutation dogOperation { mutateDog { name } }`,
			`There can be only one operation named "dogOperation".`)
	})
	t.Run("one error per repeat", func(t *testing.T) {
		expectErrors(t, UniqueOperationNames, `
			query X { dog { name } }
			query X { dog { name } }
			query X { dog { name } }`,
			`There can be only one operation named "X".`,
			`There can be only one operation named "X".`)
	})
}

func TestLoneAnonymousOperation(t *testing.T) {
	expectValid(t, LoneAnonymousOperation, `{ dog { name } }`)
	expectErrors(t, LoneAnonymousOperation, `
		{ dog { name } }
		query Named { dog { name } }`,
		"This anonymous operation must be the only defined operation.")
}

func TestSingleFieldSubscriptions(t *testing.T) {
	expectValid(t, SingleFieldSubscriptions, `subscription S { newDog { name } }`)
	expectValid(t, SingleFieldSubscriptions, `subscription S { newDog { name } newCat @skip(if: true) { name } }`)
	expectErrors(t, SingleFieldSubscriptions, `subscription S { newDog { name } ...F } fragment F on Subscription { newCat { name } }`,
		`Subscription "S" must select only one top level field.`)
	expectErrors(t, SingleFieldSubscriptions, `subscription { __typename }`,
		"Anonymous Subscription must not select an introspection top level field.")
}

func TestKnownTypeNames(t *testing.T) {
	expectValid(t, KnownTypeNames, `query ($id: ID!) { dog { ... on Dog { name } } }`)
	expectErrors(t, KnownTypeNames, `
		query ($id: JumbledUpLetters) { dog { ... on Badger { name } } }
		fragment F on Peat { name }`,
		`Unknown type "JumbledUpLetters".`,
		`Unknown type "Badger".`,
		`Unknown type "Peat".`,
	)
}

func TestFragmentsOnCompositeTypes(t *testing.T) {
	expectValid(t, FragmentsOnCompositeTypes, `fragment F on Pet { name } fragment G on CatOrDog { ... on Dog { name } }`)
	expectErrors(t, FragmentsOnCompositeTypes, `
		fragment F on Boolean { name }
		fragment G on Dog { ... on String { name } }`,
		`Fragment "F" cannot condition on non composite type "Boolean".`,
		`Fragment cannot condition on non composite type "String".`,
	)
}

func TestVariablesAreInputTypes(t *testing.T) {
	expectValid(t, VariablesAreInputTypes, `query ($a: String, $b: [ComplexInput!]!, $c: DogCommand) { dog { name } }`)
	expectErrors(t, VariablesAreInputTypes, `query ($a: Dog, $b: [[CatOrDog!]]!) { dog { name } }`,
		`Variable "$a" cannot be non-input type "Dog".`,
		`Variable "$b" cannot be non-input type "[[CatOrDog!]]!".`,
	)
}

func TestScalarLeafs(t *testing.T) {
	expectValid(t, ScalarLeafs, `{ dog { barkVolume } }`)
	expectErrors(t, ScalarLeafs, `{ dog }`,
		`Field "dog" of type "Dog" must have a selection of subfields. Did you mean "dog { ... }"?`)
	expectErrors(t, ScalarLeafs, `{ dog { doesKnowCommand(dogCommand: SIT) { x } } }`,
		`Field "doesKnowCommand" must not have a selection since type "Boolean!" has no subfields.`)
}

func TestFieldsOnCorrectType(t *testing.T) {
	expectValid(t, FieldsOnCorrectType, `{ pet { __typename name } catOrDog { __typename } }`)
	expectErrors(t, FieldsOnCorrectType, `{ pet { barkVolume } catOrDog { name } dog { __schema { queryType { name } } } }`,
		`Cannot query field "barkVolume" on type "Pet".`,
		`Cannot query field "name" on type "CatOrDog".`,
		`Cannot query field "__schema" on type "Dog".`,
	)
}

func TestUniqueFragmentNames(t *testing.T) {
	expectValid(t, UniqueFragmentNames, `{ dog { ...A ...B } } fragment A on Dog { name } fragment B on Dog { nickname }`)
	expectErrors(t, UniqueFragmentNames, `{ dog { ...A } } fragment A on Dog { name } fragment A on Dog { nickname }`,
		`There can be only one fragment named "A".`)
}

func TestKnownFragmentNames(t *testing.T) {
	expectErrors(t, KnownFragmentNames, `{ dog { ...Known ...Unknown } } fragment Known on Dog { name }`,
		`Unknown fragment "Unknown".`)
}

func TestNoUnusedFragments(t *testing.T) {
	expectValid(t, NoUnusedFragments, `{ dog { ...A } } fragment A on Dog { ...B } fragment B on Dog { name }`)
	expectErrors(t, NoUnusedFragments, `
		{ dog { ...A } }
		fragment A on Dog { name }
		fragment Unused1 on Dog { ...Unused2 }
		fragment Unused2 on Dog { name }`,
		`Fragment "Unused1" is never used.`,
		`Fragment "Unused2" is never used.`,
	)
}

func TestPossibleFragmentSpreads(t *testing.T) {
	expectValid(t, PossibleFragmentSpreads, `{ pet { ... on Dog { name } ...CatFields } } fragment CatFields on Cat { name }`)
	expectErrors(t, PossibleFragmentSpreads, `
		{ dog { ... on Cat { name } ...CatFields } human(id: 1) { ... on CatOrDog { __typename } } }
		fragment CatFields on Cat { name }`,
		`Fragment cannot be spread here as objects of type "Dog" can never be of type "Cat".`,
		`Fragment "CatFields" cannot be spread here as objects of type "Dog" can never be of type "Cat".`,
		`Fragment cannot be spread here as objects of type "Human" can never be of type "CatOrDog".`,
	)
}

func TestNoFragmentCycles(t *testing.T) {
	expectValid(t, NoFragmentCycles, `fragment A on Dog { ...B } fragment B on Dog { name }`)
	expectErrors(t, NoFragmentCycles, `fragment A on Dog { ...A }`,
		`Cannot spread fragment "A" within itself.`)
	expectErrors(t, NoFragmentCycles, `
		fragment A on Dog { ...B }
		fragment B on Dog { ...C }
		fragment C on Dog { owner { pets { ... on Dog { ...A } } } }`,
		`Cannot spread fragment "A" within itself via "B", "C".`)
}

func TestUniqueVariableNames(t *testing.T) {
	expectErrors(t, UniqueVariableNames, `query ($a: Int, $b: Int, $a: String) { dog { name } }`,
		`There can be only one variable named "$a".`)
}

func TestNoUndefinedVariables(t *testing.T) {
	expectValid(t, NoUndefinedVariables, `query ($id: ID!) { human(id: $id) { ...H } } fragment H on Human { name }`)
	expectErrors(t, NoUndefinedVariables, `
		query Q { human(id: $id) { name } dog { ...D } }
		fragment D on Dog { doesKnowCommand(dogCommand: $cmd) }`,
		`Variable "$id" is not defined by operation "Q".`,
		`Variable "$cmd" is not defined by operation "Q".`,
	)
	expectErrors(t, NoUndefinedVariables, `{ human(id: $id) { name } }`,
		`Variable "$id" is not defined.`)
}

func TestNoUnusedVariables(t *testing.T) {
	expectValid(t, NoUnusedVariables, `
		query ($cmd: DogCommand!, $skip: Boolean!) { dog @skip(if: $skip) { ...D } }
		fragment D on Dog { doesKnowCommand(dogCommand: $cmd) }`)
	expectErrors(t, NoUnusedVariables, `query Q($a: Int, $b: Int) { scalars(i: $b) }`,
		`Variable "$a" is never used in operation "Q".`)
}

func TestVariablesInAllowedPosition(t *testing.T) {
	t.Run("matching types", func(t *testing.T) {
		expectValid(t, VariablesInAllowedPosition, `
			query Q($i: Int!, $l: [Int!]!, $b: Boolean, $c: DogCommand = SIT, $s: Boolean = false) {
				scalars(i: $i, list: $l)
				dog {
					isHouseTrained(atOtherHomes: $b)
					doesKnowCommand(dogCommand: $c)
					owner @skip(if: $s) { name }
				}
			}`)
	})
	t.Run("wrong named type", func(t *testing.T) {
		errs := validate(t, `query Q($s: String) { scalars(i: $s) }`, VariablesInAllowedPosition)
		assert.Equal(t, []string{`Variable "$s" of type "String" used in position expecting type "Int".`}, messages(errs))
		assert.Len(t, errs[0].Locations, 2)
	})
	t.Run("nullable into non-null", func(t *testing.T) {
		expectErrors(t, VariablesInAllowedPosition, `query Q($c: DogCommand) { dog { doesKnowCommand(dogCommand: $c) } }`,
			`Variable "$c" of type "DogCommand" used in position expecting type "DogCommand!".`)
		expectErrors(t, VariablesInAllowedPosition, `query Q($c: DogCommand = null) { dog { doesKnowCommand(dogCommand: $c) } }`,
			`Variable "$c" of type "DogCommand" used in position expecting type "DogCommand!".`)
	})
	t.Run("list item and input field", func(t *testing.T) {
		expectErrors(t, VariablesInAllowedPosition, `
			query Q($n: Int, $l: [Int], $s: String) {
				scalars(list: [$n])
				a: scalars(i: $l)
				complex(arg: {requiredField: $s})
			}`,
			`Variable "$n" of type "Int" used in position expecting type "Int!".`,
			`Variable "$l" of type "[Int]" used in position expecting type "Int".`,
			`Variable "$s" of type "String" used in position expecting type "Boolean!".`,
		)
	})
	t.Run("through fragments", func(t *testing.T) {
		expectErrors(t, VariablesInAllowedPosition, `
			query Q($b: Boolean) { dog { ...F } }
			fragment F on Dog { owner @include(if: $b) { name } }`,
			`Variable "$b" of type "Boolean" used in position expecting type "Boolean!".`)
	})
}

func TestKnownDirectives(t *testing.T) {
	expectValid(t, KnownDirectives, `query @onQuery { dog @include(if: true) { name @onField } }`)
	expectErrors(t, KnownDirectives, `query @onField { dog @unknown { name @onQuery } }`,
		`Directive "@onField" may not be used on QUERY.`,
		`Unknown directive "@unknown".`,
		`Directive "@onQuery" may not be used on FIELD.`,
	)
}

func TestUniqueDirectivesPerLocation(t *testing.T) {
	expectValid(t, UniqueDirectivesPerLocation, `{ dog { name @tag(name: "a") @tag(name: "b") } }`)
	expectErrors(t, UniqueDirectivesPerLocation, `{ dog { name @onField @onField } }`,
		`The directive "@onField" can only be used once at this location.`)
}

func TestKnownArgumentNames(t *testing.T) {
	expectValid(t, KnownArgumentNames, `{ dog { doesKnowCommand(dogCommand: SIT) @skip(if: false) } }`)
	expectErrors(t, KnownArgumentNames, `{ dog { isHouseTrained(atHome: true) @skip(unless: false) name @unknown(x: 1) } }`,
		`Unknown argument "atHome" on field "Dog.isHouseTrained".`,
		`Unknown argument "unless" on directive "@skip".`,
	)
}

func TestUniqueArgumentNames(t *testing.T) {
	expectErrors(t, UniqueArgumentNames, `{ dog { isHouseTrained(atOtherHomes: true, atOtherHomes: false) } }`,
		`There can be only one argument named "atOtherHomes".`)
}

func TestProvidedRequiredArguments(t *testing.T) {
	expectValid(t, ProvidedRequiredArguments, `{ dog { isHouseTrained } human(id: 1) { name } }`)
	expectErrors(t, ProvidedRequiredArguments, `{ dog { doesKnowCommand @include { name } } }`,
		`Directive "@include" argument "if" of type "Boolean!" is required, but it was not provided.`,
		`Field "doesKnowCommand" argument "dogCommand" of type "DogCommand!" is required, but it was not provided.`,
	)
}

func TestValuesOfCorrectType(t *testing.T) {
	t.Run("valid literals", func(t *testing.T) {
		expectValid(t, ValuesOfCorrectType, `{
			scalars(i: 2, f: 2.5, s: "x", b: true, id: "a", list: [1, 2])
			complex(arg: {requiredField: false, intField: null, stringListField: "single"}, one: {b: 1})
			dog { doesKnowCommand(dogCommand: HEEL) }
		}`)
	})
	t.Run("scalars", func(t *testing.T) {
		expectErrors(t, ValuesOfCorrectType, `{ scalars(i: "2", b: 1, id: 1.5, list: [1, null]) }`,
			`Expected value of type "Int", found "2"; Int cannot represent value: "2"`,
			`Expected value of type "Boolean", found 1; Boolean cannot represent value: 1`,
			`Expected value of type "ID", found 1.5; ID cannot represent value: 1.5`,
			`Expected value of type "Int!", found null.`,
		)
	})
	t.Run("enums", func(t *testing.T) {
		expectErrors(t, ValuesOfCorrectType, `{ dog { a: doesKnowCommand(dogCommand: "SIT") b: doesKnowCommand(dogCommand: JUMP) } }`,
			`Enum "DogCommand" cannot represent non-enum value: "SIT".`,
			`Value "JUMP" does not exist in "DogCommand" enum.`,
		)
	})
	t.Run("input objects", func(t *testing.T) {
		expectErrors(t, ValuesOfCorrectType, `{ complex(arg: {intField: 1, extra: 2}) }`,
			`Field "ComplexInput.requiredField" of required type "Boolean!" was not provided.`,
			`Field "extra" is not defined by type "ComplexInput".`,
		)
	})
	t.Run("oneOf", func(t *testing.T) {
		expectErrors(t, ValuesOfCorrectType, `{ a: complex(one: {a: "x", b: 1}) b: complex(one: {a: null}) }`,
			`OneOf Input Object "OneOfInput" must specify exactly one key.`,
			`Field "OneOfInput.a" must be non-null.`,
		)
	})
	t.Run("variable defaults", func(t *testing.T) {
		expectErrors(t, ValuesOfCorrectType, `query ($i: Int = "one") { scalars(i: $i) }`,
			`Expected value of type "Int", found "one"; Int cannot represent value: "one"`)
	})
}

func TestUniqueInputFieldNames(t *testing.T) {
	expectErrors(t, UniqueInputFieldNames, `{ complex(arg: {requiredField: true, requiredField: false}) }`,
		`There can be only one input field named "requiredField".`)
}

func TestOverlappingFieldsCanBeMerged(t *testing.T) {
	t.Run("identical fields", func(t *testing.T) {
		expectValid(t, OverlappingFieldsCanBeMerged, `{ dog { name name } dog { nickname } }`)
	})
	t.Run("different fields", func(t *testing.T) {
		expectErrors(t, OverlappingFieldsCanBeMerged, `{ dog { name: nickname name } }`,
			`Fields "name" conflict because "nickname" and "name" are different fields. Use different aliases on the fields to fetch both if this was intentional.`)
	})
	t.Run("different arguments", func(t *testing.T) {
		expectErrors(t, OverlappingFieldsCanBeMerged, `{ dog { doesKnowCommand(dogCommand: SIT) doesKnowCommand(dogCommand: HEEL) } }`,
			`Fields "doesKnowCommand" conflict because they have differing arguments. Use different aliases on the fields to fetch both if this was intentional.`)
	})
	t.Run("through fragments", func(t *testing.T) {
		expectErrors(t, OverlappingFieldsCanBeMerged, `{ dog { x: name ...F } } fragment F on Dog { x: barkVolume }`,
			`Fields "x" conflict because "name" and "barkVolume" are different fields. Use different aliases on the fields to fetch both if this was intentional.`)
	})
	t.Run("exclusive parents", func(t *testing.T) {
		expectValid(t, OverlappingFieldsCanBeMerged, `{ pet { ... on Dog { n: nickname } ... on Cat { n: name } } }`)
	})
	t.Run("conflicting types on exclusive parents", func(t *testing.T) {
		expectErrors(t, OverlappingFieldsCanBeMerged, `{ pet { ... on Dog { v: barkVolume } ... on Cat { v: name } } }`,
			`Fields "v" conflict because they return conflicting types "Int" and "String". Use different aliases on the fields to fetch both if this was intentional.`)
	})
	t.Run("nested subfields", func(t *testing.T) {
		expectErrors(t, OverlappingFieldsCanBeMerged, `{ dog { owner { n: name } owner { n: __typename } } }`,
			`Fields "owner" conflict because subfields "n" conflict because "name" and "__typename" are different fields. Use different aliases on the fields to fetch both if this was intentional.`)
	})
	t.Run("mutually recursive fragments terminate", func(t *testing.T) {
		errs := validate(t, `
			{ human(id: 1) { pets { ...A } pets { ...B } } }
			fragment A on Pet { ... on Dog { owner { pets { ...B } } } }
			fragment B on Pet { ... on Dog { owner { pets { ...A } } } }`, OverlappingFieldsCanBeMerged)
		assert.Empty(t, messages(errs))
	})
}
