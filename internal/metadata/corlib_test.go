package metadata

import (
	"testing"

	"github.com/hexops/autogold"
)

func TestCorlibTypesByElement(t *testing.T) {
	corlib := NewCorlibTypes()

	testCases := []struct {
		element  ElementType
		expected *CorlibSig
	}{
		{ElementInt32, corlib.Int32},
		{ElementString, corlib.String},
		{ElementObject, corlib.Object},
	}

	for _, testCase := range testCases {
		if actual := corlib.ByElement(testCase.element); actual != testCase.expected {
			t.Errorf("unexpected CorlibSig for element %d. want=%p have=%p", testCase.element, testCase.expected, actual)
		}
	}

	if corlib.ByElement(ElementType(999)) != nil {
		t.Error("expected an unknown element kind to resolve to nil")
	}
}

// TestCorlibTypesElementKinds snapshots the full element-kind table so a
// future addition or reordering of corlib primitives is visible in the diff
// instead of silently changing which kind a field resolves to.
func TestCorlibTypesElementKinds(t *testing.T) {
	corlib := NewCorlibTypes()

	kinds := map[string]ElementType{
		"Void":           corlib.Void.Element,
		"Boolean":        corlib.Boolean.Element,
		"Char":           corlib.Char.Element,
		"SByte":          corlib.SByte.Element,
		"Byte":           corlib.Byte.Element,
		"Int16":          corlib.Int16.Element,
		"UInt16":         corlib.UInt16.Element,
		"Int32":          corlib.Int32.Element,
		"UInt32":         corlib.UInt32.Element,
		"Int64":          corlib.Int64.Element,
		"UInt64":         corlib.UInt64.Element,
		"Single":         corlib.Single.Element,
		"Double":         corlib.Double.Element,
		"String":         corlib.String.Element,
		"Object":         corlib.Object.Element,
		"IntPtr":         corlib.IntPtr.Element,
		"UIntPtr":        corlib.UIntPtr.Element,
		"TypedReference": corlib.TypedReference.Element,
	}

	autogold.Want("corlibElementKinds", map[string]ElementType{
		"Void":           ElementVoid,
		"Boolean":        ElementBoolean,
		"Char":           ElementChar,
		"SByte":          ElementSByte,
		"Byte":           ElementByte,
		"Int16":          ElementInt16,
		"UInt16":         ElementUInt16,
		"Int32":          ElementInt32,
		"UInt32":         ElementUInt32,
		"Int64":          ElementInt64,
		"UInt64":         ElementUInt64,
		"Single":         ElementSingle,
		"Double":         ElementDouble,
		"String":         ElementString,
		"Object":         ElementObject,
		"IntPtr":         ElementIntPtr,
		"UIntPtr":        ElementUIntPtr,
		"TypedReference": ElementTypedReference,
	}).Equal(t, kinds)
}

func TestNewModuleDefCreatesGlobalType(t *testing.T) {
	mod := NewModuleDef("Sample", &AssemblyDef{Name: "SampleAsm"})

	if mod.GlobalType == nil {
		t.Fatal("expected NewModuleDef to create a global type")
	}
	if mod.GlobalType.Name != "<Module>" || !mod.GlobalType.IsGlobal {
		t.Errorf("unexpected global type: %+v", mod.GlobalType)
	}
	if mod.Corlib == nil {
		t.Error("expected NewModuleDef to populate a corlib table")
	}
}

func TestNextTokenIsMonotonic(t *testing.T) {
	mod := NewModuleDef("Sample", &AssemblyDef{Name: "SampleAsm"})

	first := mod.NextToken()
	second := mod.NextToken()

	if second <= first {
		t.Errorf("expected NextToken to be monotonically increasing, got %d then %d", first, second)
	}
}

func TestAssemblyDefFullName(t *testing.T) {
	a := &AssemblyDef{Name: "Foo", Version: "1.0.0.0", Culture: "neutral", PublicKeyToken: "null"}
	expected := "Foo, Version=1.0.0.0, Culture=neutral, PublicKeyToken=null"
	if actual := a.FullName(); actual != expected {
		t.Errorf("unexpected full name. want=%q have=%q", expected, actual)
	}

	var nilAssembly *AssemblyDef
	if actual := nilAssembly.FullName(); actual != "" {
		t.Errorf("expected nil assembly to have an empty full name, got %q", actual)
	}
}
