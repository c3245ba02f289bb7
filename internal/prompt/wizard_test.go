package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/internal/preview"
)

type scriptedDriver struct {
	inputs   []string
	confirms []bool
	selects  []string
	asked    []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	d.asked = append(d.asked, cfg.Message)
	if len(d.inputs) == 0 {
		return "", errors.New("unexpected input prompt: " + cfg.Message)
	}
	out := d.inputs[0]
	d.inputs = d.inputs[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(out); err != nil {
			return "", err
		}
	}
	return out, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	d.asked = append(d.asked, cfg.Message)
	out := d.confirms[0]
	d.confirms = d.confirms[1:]
	return out, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	d.asked = append(d.asked, cfg.Message)
	out := d.selects[0]
	d.selects = d.selects[1:]
	return indexOf(cfg.Options, out), nil
}

func (d *scriptedDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	return nil, errors.New("not scripted")
}

func TestAskCollectsDropDownRequest(t *testing.T) {
	driver := &scriptedDriver{
		selects:  []string{"dropdown", "always"},
		inputs:   []string{"Colour", "r=Red,b=Blue", "b", "en-GB", "Pick one"},
		confirms: []bool{true},
	}

	got, err := Ask(context.Background(), driver, preview.Request{})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}

	want := preview.Request{
		Kind:    "dropdown",
		Name:    "Colour",
		Value:   "b",
		Culture: "en-GB",
		Label:   true,
		Items:   []string{"r=Red,b=Blue"},
		Errors:  []string{"Pick one"},
		Marker:  "always",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}

	markup, err := preview.Renderer{}.Render(got)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if markup == "" {
		t.Fatalf("expected markup")
	}
}

func TestAskSkipsDecorationForHiddenFields(t *testing.T) {
	driver := &scriptedDriver{
		selects: []string{"hidden"},
		inputs:  []string{"Ref", "42", ""},
	}

	got, err := Ask(context.Background(), driver, preview.Request{})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if diff := cmp.Diff([]string{"Component kind", "Property name", "Bound value", "Culture"}, driver.asked); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
	if got.Kind != "hidden" || got.Value != "42" {
		t.Fatalf("unexpected request %+v", got)
	}
}

func TestAskValidatesCulture(t *testing.T) {
	driver := &scriptedDriver{
		selects: []string{"textbox"},
		inputs:  []string{"Name", "x", "not a culture!"},
	}
	if _, err := Ask(context.Background(), driver, preview.Request{}); err == nil {
		t.Fatalf("expected invalid culture to fail")
	}
}

func TestSelectionHelpers(t *testing.T) {
	options := []string{"a", "b", "c"}
	if diff := cmp.Diff([]int{0, 2}, indicesOf(options, []string{"c", "a", "z"})); diff != "" {
		t.Fatalf("indices mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, defaultsFromIndices(options, []int{1, 7, -1})); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if indexOf(options, "z") != -1 {
		t.Fatalf("expected missing option to be -1")
	}
}
