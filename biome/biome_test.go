package biome

import "testing"

func TestLookupByNameKnownBiome(t *testing.T) {
	id, ok := LookupByName("minecraft:plains")
	if !ok {
		t.Fatal("plains should be in the table")
	}
	bi := Lookup(id)
	if bi.Temperature != 0.8 || bi.Rainfall != 0.4 {
		t.Errorf("plains temp/rainfall = %v/%v, want 0.8/0.4", bi.Temperature, bi.Rainfall)
	}
}

func TestLookupByNameUnknownBiome(t *testing.T) {
	if _, ok := LookupByName("minecraft:does_not_exist"); ok {
		t.Fatal("unknown biome name should not resolve")
	}
	unknown := Lookup(UnknownID)
	if unknown.Name != "mapcrafter:unknown" {
		t.Errorf("UnknownID did not resolve to the sentinel entry, got %q", unknown.Name)
	}
}

func TestLookupOutOfRangeFallsBackToUnknown(t *testing.T) {
	got := Lookup(ID(len(Table) + 100))
	if got.Name != "mapcrafter:unknown" {
		t.Errorf("out-of-range ID should fall back to unknown, got %q", got.Name)
	}
}

func TestTintWaterBypassesColormap(t *testing.T) {
	bi := Lookup(mustID(t, "minecraft:warm_ocean"))
	cm, err := ParseColorMap("#FF0000FF|#00FF00FF|#0000FFFF")
	if err != nil {
		t.Fatal(err)
	}
	got := Tint(bi, 64, Water, &cm)
	if got != bi.WaterTint {
		t.Errorf("water selector should bypass colormap: got %+v want %+v", got, bi.WaterTint)
	}
}

func TestTintWithNilColormapReturnsBaseTint(t *testing.T) {
	bi := Lookup(mustID(t, "minecraft:plains"))
	got := Tint(bi, 64, Grass, nil)
	if got != bi.GrassTint {
		t.Errorf("nil colormap should return base tint: got %+v want %+v", got, bi.GrassTint)
	}
}

func TestTintAveragesColormapWithBaseTint(t *testing.T) {
	bi := Lookup(mustID(t, "minecraft:plains"))
	cm, err := ParseColorMap("#FFFFFFFF|#FFFFFFFF|#FFFFFFFF")
	if err != nil {
		t.Fatal(err)
	}
	got := Tint(bi, 64, Grass, &cm)
	wantR := (255 + int(bi.GrassTint.R)) / 2
	if int(got.R) != wantR {
		t.Errorf("averaged tint R = %d, want %d", got.R, wantR)
	}
}

func TestColorMapSampleCornersReturnCornerColor(t *testing.T) {
	cm := ColorMap{
		Top:   Color{255, 0, 0, 255},
		Left:  Color{0, 255, 0, 255},
		Right: Color{0, 0, 255, 255},
	}
	// x-y=1, 1-x=0, y=0 at (x=1,y=0): pure Top.
	got := cm.Sample(1, 0)
	if got != cm.Top {
		t.Errorf("sample at top corner = %+v, want %+v", got, cm.Top)
	}
}

func mustID(t *testing.T, name string) ID {
	t.Helper()
	id, ok := LookupByName(name)
	if !ok {
		t.Fatalf("expected %q to be in the biome table", name)
	}
	return id
}
