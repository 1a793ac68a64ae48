package handlers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ersonp/legends-codex/internal/domain/services"
)

// testLegends holds two poems by two poets, a song and a poem whose form
// is missing.
const testLegends = `<?xml version="1.0" encoding='UTF-8'?>
<df_world>
	<historical_figures>
		<historical_figure>
			<id>5</id>
			<name>Urist</name>
			<race>dwarf</race>
			<caste>male</caste>
			<birth_year>-200</birth_year>
			<death_year>-150</death_year>
			<hf_skill><skill>POETRY</skill><total_ip>800</total_ip></hf_skill>
		</historical_figure>
		<historical_figure>
			<id>7</id>
			<name>Kib</name>
			<race>elf</race>
			<caste>female</caste>
			<hf_skill><skill>POETRY</skill><total_ip>1200</total_ip></hf_skill>
		</historical_figure>
	</historical_figures>
	<poetic_forms>
		<poetic_form><id>1</id><description>A lament in three stanzas</description></poetic_form>
		<poetic_form><id>2</id><description>A ribald couplet</description></poetic_form>
	</poetic_forms>
	<written_contents>
		<written_content><id>10</id><title>The Deep Song</title><author_hfid>5</author_hfid><form>poem</form><form_id>1</form_id></written_content>
		<written_content><id>11</id><title>Forest Jest</title><author_hfid>7</author_hfid><form>poem</form><form_id>2</form_id></written_content>
		<written_content><id>12</id><title>Marching Tune</title><author_hfid>5</author_hfid><form>song</form><form_id>1</form_id></written_content>
		<written_content><id>13</id><title>Lost Verse</title><author_hfid>7</author_hfid><form>poem</form><form_id>99</form_id></written_content>
	</written_contents>
</df_world>`

func writeLegends(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "legends.xml")
	require.NoError(t, os.WriteFile(path, []byte(testLegends), 0644))
	return path
}

func newTestAnthology(gen *services.GenerationService) *services.AnthologyService {
	return services.NewAnthologyService(services.NewCatalogService(nil), services.NewPersonaService(nil), gen, nil)
}
