package services

import "github.com/ersonp/legends-codex/internal/domain/legends"

// scenarioLegends is a small export: one poet, one poem, one form.
const scenarioLegends = `<?xml version="1.0" encoding='UTF-8'?>
<df_world>
	<historical_figures>
		<historical_figure>
			<id>5</id>
			<name>Urist</name>
			<race>dwarf</race>
			<caste>male</caste>
			<birth_year>-200</birth_year>
			<death_year>-150</death_year>
			<hf_link>
				<link_type>child</link_type>
				<hfid>6</hfid>
			</hf_link>
			<hf_skill>
				<skill>POETRY</skill>
				<total_ip>800</total_ip>
			</hf_skill>
		</historical_figure>
	</historical_figures>
	<poetic_forms>
		<poetic_form>
			<id>1</id>
			<description>A lament in three stanzas</description>
		</poetic_form>
	</poetic_forms>
	<written_contents>
		<written_content>
			<id>1</id>
			<title>The Deep Song</title>
			<author_hfid>5</author_hfid>
			<form>poem</form>
			<form_id>1</form_id>
		</written_content>
	</written_contents>
</df_world>`

// mixedLegends has incomplete records, a non-poem, a dangling form and
// figures outside the set of authors.
const mixedLegends = `<df_world>
	<historical_figures>
		<historical_figure><id>1</id><name>Ast</name><race>ELF</race><caste>female</caste></historical_figure>
		<historical_figure><id>2</id><race>human</race></historical_figure>
		<historical_figure><id>3</id><name>Kib</name></historical_figure>
		<historical_figure><id>4</id><name>Unrelated</name></historical_figure>
	</historical_figures>
	<poetic_forms>
		<poetic_form><id>10</id><description>Short
			and   sharp</description></poetic_form>
		<poetic_form><id>11</id></poetic_form>
		<poetic_form><description>orphan</description></poetic_form>
		<poetic_form><id>12</id><description>Long and slow</description></poetic_form>
	</poetic_forms>
	<written_contents>
		<written_content><id>100</id><title>First  Light</title><author_hfid>1</author_hfid><form>poem</form><form_id>10</form_id></written_content>
		<written_content><id>101</id><title>A Song</title><author_hfid>1</author_hfid><form>song</form><form_id>10</form_id></written_content>
		<written_content><id>102</id><author_hfid>1</author_hfid><form>poem</form><form_id>10</form_id></written_content>
		<written_content><id>103</id><title>Lost Form</title><author_hfid>3</author_hfid><form>poem</form><form_id>99</form_id></written_content>
		<written_content><id>104</id><title>Nameless Author</title><author_hfid>2</author_hfid><form>poem</form><form_id>12</form_id></written_content>
		<written_content><id>105</id><title>Ghost Verse</title><author_hfid>77</author_hfid><form>poem</form><form_id>12</form_id></written_content>
		<written_content><id>106</id><title>No Category</title><author_hfid>1</author_hfid><form_id>12</form_id></written_content>
	</written_contents>
</df_world>`

func scenarioDoc() *legends.Document {
	return legends.NewDocument(scenarioLegends)
}

func mixedDoc() *legends.Document {
	return legends.NewDocument(mixedLegends)
}
