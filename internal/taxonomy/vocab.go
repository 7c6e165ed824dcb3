// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package taxonomy

// Disciplines maps subject names to OpenEduHub discipline vocabulary URIs.
var Disciplines = newTable([]Entry{
	{Name: NoSelection, ID: ""},
	{Name: "Allgemein", ID: "http://w3id.org/openeduhub/vocabs/discipline/720"},
	{Name: "Altenpflege", ID: "http://w3id.org/openeduhub/vocabs/discipline/04002"},
	{Name: "Astronomie", ID: "http://w3id.org/openeduhub/vocabs/discipline/36003"},
	{Name: "Bautechnik", ID: "http://w3id.org/openeduhub/vocabs/discipline/04004"},
	{Name: "Berufliche Bildung", ID: "http://w3id.org/openeduhub/vocabs/discipline/00001"},
	{Name: "Biologie", ID: "http://w3id.org/openeduhub/vocabs/discipline/080"},
	{Name: "Chemie", ID: "http://w3id.org/openeduhub/vocabs/discipline/100"},
	{Name: "Chinesisch", ID: "http://w3id.org/openeduhub/vocabs/discipline/1900"},
	{Name: "Darstellendes Spiel", ID: "http://w3id.org/openeduhub/vocabs/discipline/120"},
	{Name: "Deutsch", ID: "http://w3id.org/openeduhub/vocabs/discipline/120"},
	{Name: "Deutsch als Zweitsprache", ID: "http://w3id.org/openeduhub/vocabs/discipline/140"},
	{Name: "Elektrotechnik", ID: "http://w3id.org/openeduhub/vocabs/discipline/04005"},
	{Name: "Englisch", ID: "http://w3id.org/openeduhub/vocabs/discipline/20001"},
	{Name: "Ethik", ID: "http://w3id.org/openeduhub/vocabs/discipline/160"},
	{Name: "Fächerübergreifende Bildungsthemen (Sekundarstufe I)", ID: "http://w3id.org/openeduhub/vocabs/discipline/28009"},
	{Name: "Fächerübergreifende Themen", ID: "http://w3id.org/openeduhub/vocabs/discipline/180"},
	{Name: "Französisch", ID: "http://w3id.org/openeduhub/vocabs/discipline/20002"},
	{Name: "Geographie", ID: "http://w3id.org/openeduhub/vocabs/discipline/220"},
	{Name: "Geschichte", ID: "http://w3id.org/openeduhub/vocabs/discipline/240"},
	{Name: "Gesundheit und Soziales", ID: "http://w3id.org/openeduhub/vocabs/discipline/04006"},
	{Name: "Grundschule", ID: "http://w3id.org/openeduhub/vocabs/discipline/00002"},
	{Name: "Hauswirtschaft", ID: "http://w3id.org/openeduhub/vocabs/discipline/04007"},
	{Name: "Holztechnik", ID: "http://w3id.org/openeduhub/vocabs/discipline/04008"},
	{Name: "Informatik", ID: "http://w3id.org/openeduhub/vocabs/discipline/320"},
	{Name: "Interkulturelle Bildung", ID: "http://w3id.org/openeduhub/vocabs/discipline/340"},
	{Name: "Italienisch", ID: "http://w3id.org/openeduhub/vocabs/discipline/20004"},
	{Name: "Kunst", ID: "http://w3id.org/openeduhub/vocabs/discipline/060"},
	{Name: "Körperpflege", ID: "http://w3id.org/openeduhub/vocabs/discipline/04010"},
	{Name: "Latein", ID: "http://w3id.org/openeduhub/vocabs/discipline/20005"},
	{Name: "Mathematik", ID: "http://w3id.org/openeduhub/vocabs/discipline/380"},
	{Name: "Mechatronik", ID: "http://w3id.org/openeduhub/vocabs/discipline/oeh04010"},
	{Name: "Medienbildung", ID: "http://w3id.org/openeduhub/vocabs/discipline/900"},
	{Name: "Mediendidaktik", ID: "http://w3id.org/openeduhub/vocabs/discipline/400"},
	{Name: "Metalltechnik", ID: "http://w3id.org/openeduhub/vocabs/discipline/04011"},
	{Name: "MINT", ID: "http://w3id.org/openeduhub/vocabs/discipline/04003"},
	{Name: "Musik", ID: "http://w3id.org/openeduhub/vocabs/discipline/420"},
	{Name: "Nachhaltigkeit", ID: "http://w3id.org/openeduhub/vocabs/discipline/64018"},
	{Name: "Niederdeutsch", ID: "http://w3id.org/openeduhub/vocabs/discipline/niederdeutsch"},
	{Name: "Open Educational Resources", ID: "http://w3id.org/openeduhub/vocabs/discipline/44099"},
	{Name: "Philosophie", ID: "http://w3id.org/openeduhub/vocabs/discipline/450"},
	{Name: "Physik", ID: "http://w3id.org/openeduhub/vocabs/discipline/460"},
	{Name: "Politik", ID: "http://w3id.org/openeduhub/vocabs/discipline/480"},
	{Name: "Psychologie", ID: "http://w3id.org/openeduhub/vocabs/discipline/510"},
	{Name: "Religion", ID: "http://w3id.org/openeduhub/vocabs/discipline/520"},
	{Name: "Russisch", ID: "http://w3id.org/openeduhub/vocabs/discipline/20006"},
	{Name: "Sachunterricht", ID: "http://w3id.org/openeduhub/vocabs/discipline/28010"},
	{Name: "Sexualerziehung", ID: "http://w3id.org/openeduhub/vocabs/discipline/560"},
	{Name: "Sonderpädagogik", ID: "http://w3id.org/openeduhub/vocabs/discipline/44006"},
	{Name: "Sorbisch", ID: "http://w3id.org/openeduhub/vocabs/discipline/20009"},
	{Name: "Sozialpädagogik", ID: "http://w3id.org/openeduhub/vocabs/discipline/44007"},
	{Name: "Spanisch", ID: "http://w3id.org/openeduhub/vocabs/discipline/20007"},
	{Name: "Sport", ID: "http://w3id.org/openeduhub/vocabs/discipline/600"},
	{Name: "Textiltechnik und Bekleidung", ID: "http://w3id.org/openeduhub/vocabs/discipline/04012"},
	{Name: "Türkisch", ID: "http://w3id.org/openeduhub/vocabs/discipline/20008"},
	{Name: "Wirtschaft und Verwaltung", ID: "http://w3id.org/openeduhub/vocabs/discipline/04013"},
	{Name: "Wirtschaftskunde", ID: "http://w3id.org/openeduhub/vocabs/discipline/700"},
	{Name: "Umweltgefährdung, Umweltschutz", ID: "http://w3id.org/openeduhub/vocabs/discipline/640"},
	{Name: "Verkehrserziehung", ID: "http://w3id.org/openeduhub/vocabs/discipline/660"},
	{Name: "Weiterbildung", ID: "http://w3id.org/openeduhub/vocabs/discipline/680"},
	{Name: "Werken", ID: "http://w3id.org/openeduhub/vocabs/discipline/50005"},
	{Name: "Zeitgemäße Bildung", ID: "http://w3id.org/openeduhub/vocabs/discipline/72001"},
	{Name: "Sonstiges", ID: "http://w3id.org/openeduhub/vocabs/discipline/999"},
})

// EducationalContexts maps school levels to OpenEduHub educationalContext URIs.
var EducationalContexts = newTable([]Entry{
	{Name: NoSelection, ID: ""},
	{Name: "Elementarbereich", ID: "http://w3id.org/openeduhub/vocabs/educationalContext/elementarbereich"},
	{Name: "Primarstufe", ID: "http://w3id.org/openeduhub/vocabs/educationalContext/grundschule"},
	{Name: "Sekundarstufe I", ID: "http://w3id.org/openeduhub/vocabs/educationalContext/sekundarstufe_1"},
	{Name: "Sekundarstufe II", ID: "http://w3id.org/openeduhub/vocabs/educationalContext/sekundarstufe_2"},
	{Name: "Hochschule", ID: "http://w3id.org/openeduhub/vocabs/educationalContext/hochschule"},
	{Name: "Berufliche Bildung", ID: "http://w3id.org/openeduhub/vocabs/educationalContext/berufliche_bildung"},
	{Name: "Fortbildung", ID: "http://w3id.org/openeduhub/vocabs/educationalContext/fortbildung"},
	{Name: "Erwachsenenbildung", ID: "http://w3id.org/openeduhub/vocabs/educationalContext/erwachsenenbildung"},
	{Name: "Förderschule", ID: "http://w3id.org/openeduhub/vocabs/educationalContext/foerderschule"},
	{Name: "Fernunterricht", ID: "http://w3id.org/openeduhub/vocabs/educationalContext/fernunterricht"},
})

// EducationSectors has no vocabulary; the identifier is the sector name itself.
var EducationSectors = newTable([]Entry{
	{Name: NoSelection, ID: ""},
	{Name: "Frühkindlich", ID: "Frühkindlich"},
	{Name: "Allgemeinbildend", ID: "Allgemeinbildend"},
	{Name: "Berufsbildend", ID: "Berufsbildend"},
	{Name: "Akademisch", ID: "Akademisch"},
})
